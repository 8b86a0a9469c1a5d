package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status enumerates order progression. Any status may follow any other.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
)

// Statuses lists every recognised status in lifecycle order.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusDelivered, StatusCompleted}

var (
	ErrInvalidQuantity = errors.New("Quantity must be at least 1")
	ErrInvalidStatus   = errors.New("Invalid order status")
	ErrMissingUser     = errors.New("user id is required")
	ErrMissingItem     = errors.New("menu item id is required")
)

// Order models a placed food order. ItemName is a snapshot of the menu item
// name at placement time.
type Order struct {
	ID         string
	UserID     string
	MenuItemID string
	ItemName   string
	Quantity   int
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder validates and constructs a PENDING order.
func NewOrder(userID, menuItemID, itemName string, quantity int) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	if strings.TrimSpace(menuItemID) == "" {
		return nil, ErrMissingItem
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Order{
		UserID:     userID,
		MenuItemID: menuItemID,
		ItemName:   itemName,
		Quantity:   quantity,
		Status:     StatusPending,
	}, nil
}

// ParseStatus accepts any casing and returns the canonical upper-case status.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range Statuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidStatus, raw)
}

// UpdateStatus overwrites the status; the order is untouched on error.
func (o *Order) UpdateStatus(raw string) error {
	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	o.Status = status
	return nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	return &cp
}
