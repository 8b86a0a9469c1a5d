package quickbiteserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	userapp "github.com/Apurer/quickbite-api/internal/domains/users/application"
	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	"github.com/Apurer/quickbite-api/internal/shared/access"
)

// SessionCookie carries the opaque session token in session mode.
const SessionCookie = "QUICKBITE_SESSION"

// Credential is what a client presents after a successful login.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Authenticator turns request credentials into an identity and issues or
// revokes them. Authenticate returns (nil, nil) for an anonymous caller.
type Authenticator interface {
	Authenticate(c *gin.Context) (*access.Identity, error)
	SignIn(c *gin.Context, user *userdomain.User) (Credential, error)
	SignOut(c *gin.Context) error
}

// UserLookup reloads accounts so role changes apply on the next request.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*userdomain.User, error)
}

func identityOf(u *userdomain.User) *access.Identity {
	return &access.Identity{UserID: u.ID, Username: u.Username, Role: string(u.Role)}
}

// bearerToken returns the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// SessionAuthenticator resolves server-side sessions from the session
// cookie or a bearer token.
type SessionAuthenticator struct {
	sessions     *userapp.Sessions
	users        UserLookup
	secureCookie bool
}

func NewSessionAuthenticator(sessions *userapp.Sessions, users UserLookup, secureCookie bool) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions, users: users, secureCookie: secureCookie}
}

func (a *SessionAuthenticator) token(c *gin.Context) string {
	if token := bearerToken(c.Request); token != "" {
		return token
	}
	token, _ := c.Cookie(SessionCookie)
	return token
}

func (a *SessionAuthenticator) Authenticate(c *gin.Context) (*access.Identity, error) {
	token := a.token(c)
	if token == "" {
		return nil, nil
	}
	ctx := c.Request.Context()
	session, err := a.sessions.Resolve(ctx, token)
	if errors.Is(err, userports.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user, err := a.users.FindByID(ctx, session.UserID)
	if errors.Is(err, userports.ErrNotFound) {
		_ = a.sessions.Close(ctx, token)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return identityOf(user), nil
}

func (a *SessionAuthenticator) SignIn(c *gin.Context, user *userdomain.User) (Credential, error) {
	session, err := a.sessions.Open(c.Request.Context(), user)
	if err != nil {
		return Credential{}, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, session.Token, int(a.sessions.TTL().Seconds()), "/", "", a.secureCookie, true)
	return Credential{Token: session.Token, ExpiresAt: session.ExpiresAt}, nil
}

func (a *SessionAuthenticator) SignOut(c *gin.Context) error {
	token := a.token(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", a.secureCookie, true)
	return a.sessions.Close(c.Request.Context(), token)
}

// TokenAuthenticator accepts stateless signed tokens. The subject is
// reloaded on every request, so a demoted account loses access at once.
type TokenAuthenticator struct {
	issuer userports.TokenIssuer
	users  UserLookup
}

func NewTokenAuthenticator(issuer userports.TokenIssuer, users UserLookup) *TokenAuthenticator {
	return &TokenAuthenticator{issuer: issuer, users: users}
}

func (a *TokenAuthenticator) Authenticate(c *gin.Context) (*access.Identity, error) {
	raw := bearerToken(c.Request)
	if raw == "" {
		return nil, nil
	}
	claims, err := a.issuer.Verify(raw)
	if errors.Is(err, userports.ErrInvalidToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user, err := a.users.FindByID(c.Request.Context(), claims.UserID)
	if errors.Is(err, userports.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return identityOf(user), nil
}

func (a *TokenAuthenticator) SignIn(_ *gin.Context, user *userdomain.User) (Credential, error) {
	token, expires, err := a.issuer.Issue(user)
	if err != nil {
		return Credential{}, err
	}
	return Credential{Token: token, ExpiresAt: expires}, nil
}

// SignOut is a no-op: tokens expire on their own.
func (a *TokenAuthenticator) SignOut(*gin.Context) error { return nil }

// DisabledAuthenticator treats every caller as an administrator. It exists
// for local testing only.
type DisabledAuthenticator struct {
	Identity access.Identity
}

func NewDisabledAuthenticator() *DisabledAuthenticator {
	return &DisabledAuthenticator{Identity: access.Identity{
		UserID:   "test-admin",
		Username: "test-admin",
		Role:     access.RoleAdmin,
	}}
}

func (a *DisabledAuthenticator) Authenticate(*gin.Context) (*access.Identity, error) {
	id := a.Identity
	return &id, nil
}

func (a *DisabledAuthenticator) SignIn(*gin.Context, *userdomain.User) (Credential, error) {
	return Credential{}, nil
}

func (a *DisabledAuthenticator) SignOut(*gin.Context) error { return nil }

// AccessControl authenticates the caller, stores the identity on the
// request context and enforces policy before any handler runs. On public
// routes a failing credential backend degrades the caller to anonymous;
// the cause is still recorded on the context for the request logger.
func AccessControl(auth Authenticator, policy access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		requirement := policy.Resolve(c.Request.Method, c.Request.URL.Path)
		id, err := auth.Authenticate(c)
		if err != nil {
			if requirement.Level != access.LevelPublic {
				respondError(c, err)
				return
			}
			_ = c.Error(err)
			id = nil
		}
		if id != nil {
			c.Request = c.Request.WithContext(access.WithIdentity(c.Request.Context(), *id))
		}
		if err := requirement.Check(id); err != nil {
			respondError(c, err)
			return
		}
		c.Next()
	}
}
