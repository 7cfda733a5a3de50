package memberRepo

import (
	"errors"

	"fitbook/models"
)

// ErrMemberNotFound is returned when no member matches the filter.
var ErrMemberNotFound = errors.New("member not found")

// MemberRepository defines the interface for member account access.
type MemberRepository interface {
	Create(member *models.Member) error
	GetByID(id string) (*models.Member, error)
	GetByEmail(email string) (*models.Member, error)
	// UpsertDevice records a device's active token hash on the member document.
	UpsertDevice(memberID string, device models.MemberDevice) error
}
