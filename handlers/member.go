package handlers

import (
	"errors"
	"net/http"

	"fitbook/services/user"
	"fitbook/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler serves member registration and sign-in.
type MemberHandler struct {
	Service user.MemberService
}

func NewMemberHandler(svc user.MemberService) *MemberHandler {
	return &MemberHandler{Service: svc}
}

// RegisterHandler creates a new member account.
func (h *MemberHandler) RegisterHandler(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	member, err := h.Service.Register(input.Name, input.Email, input.Password, input.PhoneNumber)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// SignInHandler authenticates a member and issues a device-scoped token.
func (h *MemberHandler) SignInHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "X-Device-ID header is required")
		return
	}

	member, token, err := h.Service.SignIn(input.Email, input.Password, deviceID)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid email or password", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "sign-in failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member, "token": token})
}
