package quickbiteserver

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menudomain "github.com/Apurer/quickbite-api/internal/domains/menu/domain"
	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
	apierrors "github.com/Apurer/quickbite-api/internal/shared/errors"
)

func seedMenuItem(t *testing.T, srv *testServer, name string) *menudomain.MenuItem {
	t.Helper()
	item, err := srv.menu.Create(context.Background(), menuports.ItemInput{Name: name, Description: "", Price: decimal.RequireFromString("99.00")})
	require.NoError(t, err)
	return item
}

func TestPlaceOrderAlwaysStartsPending(t *testing.T) {
	srv := newTestServer(t, sessionMode)
	student := srv.seedUser("student", "secret!1", userdomain.RoleStudent)
	item := seedMenuItem(t, srv, "Masala Dosa")
	token := srv.login("student", "secret!1")

	require.Equal(t, http.StatusUnauthorized, srv.do(request{method: http.MethodPost, path: "/order/place", body: OrderRequest{UserId: student.ID, MenuItemId: item.ID}}).Code)

	rec := srv.do(request{method: http.MethodPost, path: "/order/place", token: token,
		body: map[string]any{"userId": student.ID, "menuItemId": item.ID, "status": "DELIVERED"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed Order
	decode(t, rec, &placed)
	assert.Equal(t, "PENDING", placed.Status)
	assert.Equal(t, 1, placed.Quantity)
	assert.Equal(t, "Masala Dosa", placed.ItemName)
	assert.Equal(t, "student", placed.Username)

	rec = srv.do(request{method: http.MethodGet, path: "/order/user/" + student.ID, token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []Order
	decode(t, rec, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, placed.Id, mine[0].Id)
}

func TestPlaceOrderRejectsBadReferences(t *testing.T) {
	srv := newTestServer(t, disabledMode)
	student := srv.seedUser("student", "secret!1", userdomain.RoleStudent)
	item := seedMenuItem(t, srv, "Idli")

	rec := srv.do(request{method: http.MethodPost, path: "/order/place", body: OrderRequest{UserId: "ghost", MenuItemId: item.ID}})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user not found with id: ghost", decodeProblem(t, rec).Detail)

	rec = srv.do(request{method: http.MethodPost, path: "/order/place", body: OrderRequest{UserId: student.ID, MenuItemId: "ghost"}})
	require.Equal(t, http.StatusNotFound, rec.Code)

	zero := 0
	rec = srv.do(request{method: http.MethodPost, path: "/order/place", body: OrderRequest{UserId: student.ID, MenuItemId: item.ID, Quantity: &zero}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeProblem(t, rec).Extensions["fields"].(map[string]any)
	assert.Equal(t, "Quantity must be at least 1", fields["quantity"])

	rec = srv.do(request{method: http.MethodPost, path: "/order/place", body: `{"menuItemId":"x"}`})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields = decodeProblem(t, rec).Extensions["fields"].(map[string]any)
	assert.Equal(t, "User ID is required", fields["userId"])

	count, err := srv.orders.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestOrderStatusWorkflow(t *testing.T) {
	srv := newTestServer(t, sessionMode)
	srv.seedUser("admin", "admin123!", userdomain.RoleAdmin)
	student := srv.seedUser("student", "secret!1", userdomain.RoleStudent)
	item := seedMenuItem(t, srv, "Vada Pav")
	studentToken := srv.login("student", "secret!1")
	adminToken := srv.login("admin", "admin123!")

	rec := srv.do(request{method: http.MethodPost, path: "/order/place", token: studentToken, body: OrderRequest{UserId: student.ID, MenuItemId: item.ID}})
	require.Equal(t, http.StatusCreated, rec.Code)
	var placed Order
	decode(t, rec, &placed)
	statusPath := "/order/" + placed.Id + "/status"

	require.Equal(t, http.StatusForbidden, srv.do(request{method: http.MethodPut, path: statusPath + "?status=APPROVED", token: studentToken}).Code)
	require.Equal(t, http.StatusForbidden, srv.do(request{method: http.MethodGet, path: "/order/pending", token: studentToken}).Code)
	require.Equal(t, http.StatusUnauthorized, srv.do(request{method: http.MethodGet, path: "/order/pending"}).Code)

	rec = srv.do(request{method: http.MethodGet, path: "/order/pending", token: adminToken})
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []Order
	decode(t, rec, &pending)
	require.Len(t, pending, 1)

	rec = srv.do(request{method: http.MethodPut, path: statusPath + "?status=banana", token: adminToken})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, apierrors.TypeInvalidStatus, problem.Type)
	assert.Equal(t, "Invalid order status: banana", problem.Detail)

	rec = srv.do(request{method: http.MethodPut, path: statusPath, token: adminToken})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(request{method: http.MethodPut, path: statusPath + "?status=approved", token: adminToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var approved Order
	decode(t, rec, &approved)
	assert.Equal(t, "APPROVED", approved.Status)
	assert.Equal(t, "student", approved.Username)

	rec = srv.do(request{method: http.MethodGet, path: "/order/pending", token: adminToken})
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = srv.do(request{method: http.MethodPut, path: "/order/missing/status?status=APPROVED", token: adminToken})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found with id: missing", decodeProblem(t, rec).Detail)
}

func TestListAllUsesLiveItemNames(t *testing.T) {
	srv := newTestServer(t, disabledMode)
	student := srv.seedUser("student", "secret!1", userdomain.RoleStudent)
	item := seedMenuItem(t, srv, "Old Name")

	rec := srv.do(request{method: http.MethodPost, path: "/order/place", body: OrderRequest{UserId: student.ID, MenuItemId: item.ID}})
	require.Equal(t, http.StatusCreated, rec.Code)

	_, err := srv.menu.Update(context.Background(), item.ID, menuports.ItemInput{Name: "New Name", Price: decimal.RequireFromString("10")})
	require.NoError(t, err)

	var all, mine []Order
	decode(t, srv.do(request{method: http.MethodGet, path: "/order/all"}), &all)
	decode(t, srv.do(request{method: http.MethodGet, path: "/order/user/" + student.ID}), &mine)
	require.Len(t, all, 1)
	require.Len(t, mine, 1)
	assert.Equal(t, "New Name", all[0].ItemName)
	assert.Equal(t, "Old Name", mine[0].ItemName)
}
