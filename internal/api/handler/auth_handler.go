package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/boatapi/internal/api/dto"
	"github.com/martijn/boatapi/internal/core/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(service.NewValidationError(map[string]string{"body": "Malformed JSON request body"}))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		Type:      result.Type,
		ExpiresIn: result.ExpiresIn,
	})
}
