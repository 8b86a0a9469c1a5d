package quickbiteserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
)

// MenuAPI serves the menu catalogue.
type MenuAPI struct {
	service menuports.Service
}

// NewMenuAPI wires dependencies.
func NewMenuAPI(service menuports.Service) MenuAPI {
	return MenuAPI{service: service}
}

func (r MenuItemRequest) input() menuports.ItemInput {
	return menuports.ItemInput{Name: r.Name, Description: r.Description, Price: *r.Price}
}

// Get /menu
func (api *MenuAPI) ListMenu(c *gin.Context) {
	items, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuItems(items))
}

// Post /menu
func (api *MenuAPI) AddItem(c *gin.Context) {
	var payload MenuItemRequest
	if err := bind(c, &payload); err != nil {
		respondError(c, err)
		return
	}
	item, err := api.service.Create(c.Request.Context(), payload.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMenuItem(item))
}

// Put /menu/:id
// Replace every field of an item
func (api *MenuAPI) UpdateItem(c *gin.Context) {
	var payload MenuItemRequest
	if err := bind(c, &payload); err != nil {
		respondError(c, err)
		return
	}
	item, err := api.service.Update(c.Request.Context(), c.Param("id"), payload.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuItem(item))
}

// Delete /menu/:id
func (api *MenuAPI) DeleteItem(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
