package quickbiteserver

import (
	"time"

	"github.com/shopspring/decimal"

	menudomain "github.com/Apurer/quickbite-api/internal/domains/menu/domain"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
)

// RegisterRequest is the body of POST /auth/register. Role is accepted for
// compatibility and ignored.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,username"`
	Password string `json:"password" binding:"required,min=6,password_symbol"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the public projection of an account.
type User struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is the account record returned on login together with the
// credential the client should present on later calls.
type LoginResponse struct {
	Id        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// MenuItemRequest is the full replacement content of a menu item.
type MenuItemRequest struct {
	Name        string           `json:"name" binding:"required,min=2,max=100"`
	Description string           `json:"description" binding:"max=500"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
}

type MenuItem struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// OrderRequest is the body of POST /order/place. Status is ignored.
type OrderRequest struct {
	UserId     string `json:"userId" binding:"required"`
	MenuItemId string `json:"menuItemId" binding:"required"`
	Quantity   *int   `json:"quantity" binding:"omitempty,min=1"`
	Status     string `json:"status,omitempty"`
}

type Order struct {
	Id       string `json:"id"`
	ItemName string `json:"itemName"`
	Status   string `json:"status"`
	Username string `json:"username"`
	Quantity int    `json:"quantity"`
}

func toUser(u *userdomain.User) User {
	return User{Id: u.ID, Username: u.Username, Role: string(u.Role)}
}

func toUsers(list []*userdomain.User) []User {
	out := make([]User, 0, len(list))
	for _, u := range list {
		out = append(out, toUser(u))
	}
	return out
}

func toLoginResponse(u *userdomain.User) LoginResponse {
	return LoginResponse{Id: u.ID, Username: u.Username, Role: string(u.Role)}
}

func toMenuItem(item *menudomain.MenuItem) MenuItem {
	price, _ := item.Price.Float64()
	return MenuItem{Id: item.ID, Name: item.Name, Description: item.Description, Price: price}
}

func toMenuItems(items []*menudomain.MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItem(item))
	}
	return out
}

func toOrder(v orderports.View) Order {
	return Order{Id: v.ID, ItemName: v.ItemName, Status: string(v.Status), Username: v.Username, Quantity: v.Quantity}
}

func toOrders(views []orderports.View) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, toOrder(v))
	}
	return out
}
