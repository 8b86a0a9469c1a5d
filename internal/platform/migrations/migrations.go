package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the relational schema for every bounded context. Adapters
// also AutoMigrate their own record on construction.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&sessionRecord{},
		&menuItemRecord{},
		&orderRecord{},
	)
}

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:36"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:text"`
	OrderIDs     []string  `gorm:"column:order_ids;serializer:json;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:64"`
	UserID    string    `gorm:"column:user_id;size:36;index"`
	Username  string    `gorm:"column:username;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Menu item schema mirrors the menu Postgres adapter.
type menuItemRecord struct {
	ID          string          `gorm:"primaryKey;column:id;size:36"`
	Name        string          `gorm:"column:name;size:100"`
	Description string          `gorm:"column:description;size:500"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (menuItemRecord) TableName() string { return "menu_items" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:36"`
	UserID     string    `gorm:"column:user_id;size:36;index"`
	MenuItemID string    `gorm:"column:menu_item_id;size:36"`
	ItemName   string    `gorm:"column:item_name;size:100"`
	Quantity   int       `gorm:"column:quantity"`
	Status     string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
