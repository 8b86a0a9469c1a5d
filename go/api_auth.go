package quickbiteserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/shared/access"
)

// AuthAPI serves registration, login and account administration.
type AuthAPI struct {
	service userports.Service
	auth    Authenticator
}

// NewAuthAPI wires dependencies.
func NewAuthAPI(service userports.Service, auth Authenticator) AuthAPI {
	return AuthAPI{service: service, auth: auth}
}

// Post /auth/register
// Register a STUDENT account
func (api *AuthAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if err := bind(c, &payload); err != nil {
		respondError(c, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), userports.RegisterInput{
		Username: payload.Username,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUser(user))
}

// Post /auth/login
// Verify credentials and open a session
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := bind(c, &payload); err != nil {
		respondError(c, err)
		return
	}
	user, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	credential, err := api.auth.SignIn(c, user)
	if err != nil {
		respondError(c, err)
		return
	}
	body := toLoginResponse(user)
	if credential.Token != "" {
		body.Token = credential.Token
		expires := credential.ExpiresAt
		body.ExpiresAt = &expires
	}
	c.JSON(http.StatusOK, body)
}

// Post /auth/logout
func (api *AuthAPI) Logout(c *gin.Context) {
	if err := api.auth.SignOut(c); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Get /auth/current
// Return the caller's account
func (api *AuthAPI) Current(c *gin.Context) {
	id, ok := access.IdentityFrom(c.Request.Context())
	if !ok {
		respondError(c, access.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, User{Id: id.UserID, Username: id.Username, Role: id.Role})
}

// Put /auth/changeRole/:id
// Change an account's role
func (api *AuthAPI) ChangeRole(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))
	if role == "" {
		respondError(c, badRequestError{err: errors.New("role query parameter is required")})
		return
	}
	user, err := api.service.ChangeRole(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUser(user))
}

// Get /auth
// List all accounts
func (api *AuthAPI) ListUsers(c *gin.Context) {
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUsers(users))
}
