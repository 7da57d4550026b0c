package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencampus/doctrack/internal/auth"
	"github.com/opencampus/doctrack/internal/service"
)

// AuthController handles login and identity lookup.
type AuthController struct {
	users  service.UserService
	tokens *auth.TokenManager
}

// NewAuthController creates an auth controller.
func NewAuthController(users service.UserService, tokens *auth.TokenManager) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	user, err := ac.users.Authenticate(req.Email, req.Password)
	if err != nil {
		Error(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	designationID := ""
	if user.DesignationID != nil {
		designationID = *user.DesignationID
	}

	token, expiresAt, err := ac.tokens.Issue(user.ID, user.Role, designationID)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	actor, ok := auth.ActorFrom(c)
	if !ok {
		Error(c, http.StatusUnauthorized, "authentication required", "")
		return
	}

	user, err := ac.users.Get(actor.ID)
	if err != nil {
		HandleError(c, err)
		return
	}

	Success(c, user)
}
