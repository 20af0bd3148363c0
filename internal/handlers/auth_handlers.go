package handlers

import (
	"errors"
	"net/http"

	"clienteflow_backend/internal/services"
	"clienteflow_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Login checks the shared credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", ""))
			return
		}
		utils.LogError(err, "Login: Error from authService.Login")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log in.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout invalidates the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("sessionToken")
	if err := h.authService.Logout(token); err != nil {
		if errors.Is(err, services.ErrInvalidSession) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired session.", ""))
			return
		}
		utils.LogError(err, "Logout: Error from authService.Logout")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to log out.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession reports the current session.
func (h *AuthHandler) GetSession(c *gin.Context) {
	token := c.GetString("sessionToken")
	session, err := h.authService.ValidateSession(token)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired session.", ""))
		return
	}
	c.JSON(http.StatusOK, session)
}
