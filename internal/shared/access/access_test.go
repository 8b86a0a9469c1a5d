package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicyResolve(t *testing.T) {
	policy := DefaultPolicy()
	admin := RequireRole(RoleAdmin)

	cases := []struct {
		method, path string
		want         Requirement
	}{
		{"GET", "/", Public()},
		{"GET", "/index.html", Public()},
		{"GET", "/css/site/main.css", Public()},
		{"GET", "/js/app.js", Public()},
		{"GET", "/healthz", Public()},
		{"POST", "/auth/register", Public()},
		{"POST", "/auth/login", Public()},
		{"GET", "/auth/current", Public()},
		{"PUT", "/auth/changeRole/42", admin},
		{"GET", "/auth", admin},
		{"GET", "/menu", Public()},
		{"POST", "/menu", admin},
		{"PUT", "/menu/1", admin},
		{"DELETE", "/menu/1", admin},
		{"POST", "/order/place", AuthenticatedAny()},
		{"GET", "/order/user/u1", AuthenticatedAny()},
		{"GET", "/order/all", admin},
		{"GET", "/order/pending", admin},
		{"PUT", "/order/o1/status", admin},
		{"GET", "/admin/metrics", admin},
		{"DELETE", "/admin/anything/deep", admin},
		{"GET", "/order/user", AuthenticatedAny()},
		{"GET", "/unknown", AuthenticatedAny()},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Resolve(tc.method, tc.path))
		})
	}
}

func TestRequirementCheck(t *testing.T) {
	student := &Identity{UserID: "u1", Role: "STUDENT"}
	admin := &Identity{UserID: "a1", Role: RoleAdmin}

	require.NoError(t, Public().Check(nil))
	require.ErrorIs(t, AuthenticatedAny().Check(nil), ErrUnauthenticated)
	require.NoError(t, AuthenticatedAny().Check(student))
	require.ErrorIs(t, RequireRole(RoleAdmin).Check(nil), ErrUnauthenticated)
	require.ErrorIs(t, RequireRole(RoleAdmin).Check(student), ErrForbidden)
	require.NoError(t, RequireRole(RoleAdmin).Check(admin))
}

func TestMatchSegments(t *testing.T) {
	assert.True(t, matchSegments(split("/a/**"), split("/a")))
	assert.True(t, matchSegments(split("/a/**/z"), split("/a/b/c/z")))
	assert.False(t, matchSegments(split("/a/*"), split("/a/b/c")))
	assert.False(t, matchSegments(split("/*.html"), split("/css/x.html")))
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: "u1", Role: RoleAdmin})
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
	assert.True(t, id.IsAdmin())
}
