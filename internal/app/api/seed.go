package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	menuports "github.com/Apurer/quickbite-api/internal/domains/menu/ports"
	orderdomain "github.com/Apurer/quickbite-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/quickbite-api/internal/domains/orders/ports"
	userdomain "github.com/Apurer/quickbite-api/internal/domains/users/domain"
	userports "github.com/Apurer/quickbite-api/internal/domains/users/ports"
)

type seedUser struct {
	username, password string
	role               userdomain.Role
}

var seedUsers = []seedUser{
	{"user1", "user123!", userdomain.RoleStudent},
	{"admin", "admin123!", userdomain.RoleAdmin},
}

var seedMenu = []menuports.ItemInput{
	{Name: "Margherita Pizza", Description: "Classic cheese & tomato", Price: decimal.NewFromInt(199)},
	{Name: "Veggie Burger", Description: "Loaded with fresh veggies", Price: decimal.NewFromInt(149)},
	{Name: "Cold Coffee", Description: "Chilled & refreshing", Price: decimal.NewFromInt(99)},
	{Name: "French Fries", Description: "Crispy golden fries", Price: decimal.NewFromInt(89)},
}

type seedOrder struct {
	item     string
	quantity int
	status   orderdomain.Status
}

var seedOrders = []seedOrder{
	{"Margherita Pizza", 2, orderdomain.StatusPending},
	{"Veggie Burger", 1, orderdomain.StatusCompleted},
	{"French Fries", 3, orderdomain.StatusPending},
}

// Seed fills each empty store with demo data. Stores that already hold
// records are left untouched, so it is safe to run on every start.
func Seed(ctx context.Context, users userports.Service, menu menuports.Service, orders orderports.Service, logger *slog.Logger) error {
	if n, err := users.Count(ctx); err != nil {
		return fmt.Errorf("count users: %w", err)
	} else if n == 0 {
		for _, u := range seedUsers {
			created, err := users.Register(ctx, userports.RegisterInput{Username: u.username, Password: u.password})
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.username, err)
			}
			if u.role != userdomain.RoleStudent {
				if _, err := users.ChangeRole(ctx, created.ID, string(u.role)); err != nil {
					return fmt.Errorf("seed role for %s: %w", u.username, err)
				}
			}
		}
		logger.Info("demo users seeded", slog.Int("count", len(seedUsers)))
	}

	if n, err := menu.Count(ctx); err != nil {
		return fmt.Errorf("count menu items: %w", err)
	} else if n == 0 {
		for _, item := range seedMenu {
			if _, err := menu.Create(ctx, item); err != nil {
				return fmt.Errorf("seed menu item %s: %w", item.Name, err)
			}
		}
		logger.Info("demo menu seeded", slog.Int("count", len(seedMenu)))
	}

	n, err := orders.Count(ctx)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if n > 0 {
		return nil
	}
	student, err := users.FindByUsername(ctx, "user1")
	if err != nil {
		logger.Warn("skipping demo orders, user1 missing", slog.String("error", err.Error()))
		return nil
	}
	items, err := menu.List(ctx)
	if err != nil {
		return fmt.Errorf("list menu items: %w", err)
	}
	byName := make(map[string]string, len(items))
	for _, item := range items {
		byName[item.Name] = item.ID
	}
	placed := 0
	for _, o := range seedOrders {
		itemID, ok := byName[o.item]
		if !ok {
			continue
		}
		quantity := o.quantity
		view, err := orders.Place(ctx, orderports.PlaceInput{UserID: student.ID, MenuItemID: itemID, Quantity: &quantity})
		if err != nil {
			return fmt.Errorf("seed order for %s: %w", o.item, err)
		}
		if o.status != orderdomain.StatusPending {
			if _, err := orders.UpdateStatus(ctx, view.ID, string(o.status)); err != nil {
				return fmt.Errorf("seed order status for %s: %w", o.item, err)
			}
		}
		placed++
	}
	logger.Info("demo orders seeded", slog.Int("count", placed))
	return nil
}
