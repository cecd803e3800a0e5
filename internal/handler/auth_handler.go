package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler serves authentication endpoints.
type AuthHandler struct {
	auth authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Exchange admin credentials for a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if h.auth == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "login successful", resp)
}
