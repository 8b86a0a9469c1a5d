package quickbiteserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
)

// OrderAPI serves order placement and fulfilment.
type OrderAPI struct {
	service orderports.Service
}

// NewOrderAPI wires dependencies.
func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /order/place
// Place an order; it always starts PENDING
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload OrderRequest
	if err := bind(c, &payload); err != nil {
		respondError(c, err)
		return
	}
	view, err := api.service.Place(c.Request.Context(), orderports.PlaceInput{
		UserID:     payload.UserId,
		MenuItemID: payload.MenuItemId,
		Quantity:   payload.Quantity,
		Status:     payload.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrder(view))
}

// Get /order/user/:userId
func (api *OrderAPI) GetOrdersByUser(c *gin.Context) {
	views, err := api.service.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrders(views))
}

// Get /order/all
func (api *OrderAPI) GetAllOrders(c *gin.Context) {
	views, err := api.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrders(views))
}

// Get /order/pending
func (api *OrderAPI) GetPendingOrders(c *gin.Context) {
	views, err := api.service.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrders(views))
}

// Put /order/:id/status
// Set an order's status, case-insensitively
func (api *OrderAPI) UpdateStatus(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	if status == "" {
		respondError(c, badRequestError{err: errors.New("status query parameter is required")})
		return
	}
	view, err := api.service.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(view))
}
