package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	memberRepo "fitbook/database/repository/member"
	"fitbook/models"
	"fitbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown emails or wrong passwords.
var ErrInvalidCredentials = errors.New("invalid email or password")

// TokenDuration is how long a sign-in token stays valid.
const TokenDuration = 7 * 24 * time.Hour

// MemberService manages member accounts and sign-in. The booking flow only
// needs the member's identity; it receives it as an explicit parameter, never
// from ambient state.
type MemberService interface {
	Register(name, email, password, phone string) (*models.Member, error)
	SignIn(email, password, deviceID string) (*models.Member, string, error)
	GetByID(id string) (*models.Member, error)
}

// DefaultMemberService implements MemberService.
type DefaultMemberService struct {
	Repo memberRepo.MemberRepository
}

func (s *DefaultMemberService) Register(name, email, password, phone string) (*models.Member, error) {
	logger := utils.GetLogger()

	if name == "" || email == "" || len(password) < 8 {
		return nil, errors.New("name, email and a password of at least 8 characters are required")
	}
	if existing, err := s.Repo.GetByEmail(email); err == nil && existing != nil {
		return nil, errors.New("an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	member := &models.Member{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		PhoneNumber:  phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	logger.Info("member registered", zap.String("memberID", member.ID))
	return member, nil
}

func (s *DefaultMemberService) SignIn(email, password, deviceID string) (*models.Member, string, error) {
	member, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(member.ID, deviceID, TokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpsertDevice(member.ID, models.MemberDevice{
		DeviceID:  deviceID,
		TokenHash: tokenHash,
		LastSeen:  time.Now(),
	}); err != nil {
		return nil, "", fmt.Errorf("failed to record device: %w", err)
	}

	// Warm the auth cache so the middleware skips the DB on the next request.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cacheKey := utils.AuthCachePrefix + member.ID + ":" + deviceID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to warm auth cache", zap.String("memberID", member.ID), zap.Error(err))
	}

	return member, token, nil
}

func (s *DefaultMemberService) GetByID(id string) (*models.Member, error) {
	return s.Repo.GetByID(id)
}
