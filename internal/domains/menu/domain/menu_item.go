package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName        = errors.New("Menu item name must be between 2 and 100 characters")
	ErrDescriptionTooLong = errors.New("Description must not exceed 500 characters")
	ErrInvalidPrice       = errors.New("Price must be greater than 0")
)

// MinimumPrice is exclusive: a price must be strictly above it.
var MinimumPrice = decimal.RequireFromString("0.01")

const (
	minNameLength        = 2
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// MenuItem is a purchasable dish.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// NewMenuItem validates and builds an item without an id.
func NewMenuItem(name, description string, price decimal.Decimal) (*MenuItem, error) {
	item := &MenuItem{}
	if err := item.Replace(name, description, price); err != nil {
		return nil, err
	}
	return item, nil
}

// Replace overwrites name, description and price after validating them.
// The receiver is untouched when validation fails.
func (m *MenuItem) Replace(name, description string, price decimal.Decimal) error {
	if err := validate(name, description, price); err != nil {
		return err
	}
	m.Name = name
	m.Description = description
	m.Price = price
	return nil
}

// Validate re-applies the invariants for persistence.
func (m *MenuItem) Validate() error {
	return validate(m.Name, m.Description, m.Price)
}

func validate(name, description string, price decimal.Decimal) error {
	n := utf8.RuneCountInString(name)
	if strings.TrimSpace(name) == "" || n < minNameLength || n > maxNameLength {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if !price.GreaterThan(MinimumPrice) {
		return ErrInvalidPrice
	}
	return nil
}

func (m *MenuItem) Clone() *MenuItem {
	if m == nil {
		return nil
	}
	cp := *m
	return &cp
}
