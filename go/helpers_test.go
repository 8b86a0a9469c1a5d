package quickbiteserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	menumemory "github.com/Apurer/quickbite-api/internal/domains/menu/adapters/memory"
	menuapp "github.com/Apurer/quickbite-api/internal/domains/menu/application"
	ordermemory "github.com/Apurer/quickbite-api/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/quickbite-api/internal/domains/orders/application"
	usercrypto "github.com/Apurer/quickbite-api/internal/domains/users/adapters/crypto"
	usermemory "github.com/Apurer/quickbite-api/internal/domains/users/adapters/memory"
	usertoken "github.com/Apurer/quickbite-api/internal/domains/users/adapters/token"
	userapp "github.com/Apurer/quickbite-api/internal/domains/users/application"
	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/quickbite-api/internal/shared/errors"
)

type authMode int

const (
	sessionMode authMode = iota
	tokenMode
	disabledMode
)

type testServer struct {
	t      *testing.T
	router *gin.Engine
	users  *userapp.Service
	menu   *menuapp.Service
	orders *orderapp.Service
}

func newTestServer(t *testing.T, mode authMode) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := userapp.NewService(usermemory.NewRepository(), usercrypto.NewBcryptHasher(bcrypt.MinCost))
	menu := menuapp.NewService(menumemory.NewRepository())
	orders := orderapp.NewService(ordermemory.NewRepository(), users, menu)

	var auth Authenticator
	switch mode {
	case tokenMode:
		issuer, err := usertoken.NewJWTIssuer("test-secret", time.Hour)
		require.NoError(t, err)
		auth = NewTokenAuthenticator(issuer, users)
	case disabledMode:
		auth = NewDisabledAuthenticator()
	default:
		auth = NewSessionAuthenticator(userapp.NewSessions(usermemory.NewSessionStore(), time.Hour), users, false)
	}

	router := NewRouter(ApiHandleFunctions{
		AuthAPI:  NewAuthAPI(users, auth),
		MenuAPI:  NewMenuAPI(menu),
		OrderAPI: NewOrderAPI(orders),
	}, RouterOptions{Metrics: NewMetrics()})

	return &testServer{t: t, router: router, users: users, menu: menu, orders: orders}
}

type request struct {
	method string
	path   string
	body   any
	token  string
	cookie *http.Cookie
}

func (s *testServer) do(r request) *httptest.ResponseRecorder {
	s.t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		switch v := r.body.(type) {
		case string:
			body.WriteString(v)
		default:
			require.NoError(s.t, json.NewEncoder(&body).Encode(v))
		}
	}
	req := httptest.NewRequest(r.method, r.path, &body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.cookie != nil {
		req.AddCookie(r.cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// seedUser registers an account directly and optionally promotes it.
func (s *testServer) seedUser(username, password string, role userdomain.Role) *userdomain.User {
	s.t.Helper()
	ctx := context.Background()
	user, err := s.users.Register(ctx, userports.RegisterInput{Username: username, Password: password})
	require.NoError(s.t, err)
	if role != userdomain.RoleStudent {
		user, err = s.users.ChangeRole(ctx, user.ID, string(role))
		require.NoError(s.t, err)
	}
	return user
}

// login returns the bearer token issued for username.
func (s *testServer) login(username, password string) string {
	s.t.Helper()
	rec := s.do(request{method: http.MethodPost, path: "/auth/login", body: LoginRequest{Username: username, Password: password}})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp LoginResponse
	decode(s.t, rec, &resp)
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	decode(t, rec, &problem)
	return problem
}
