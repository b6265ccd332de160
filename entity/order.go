package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderCompleted  = "COMPLETED"
	OrderCancelled  = "CANCELLED"
)

// NextStatuses is the full transition table. COMPLETED and CANCELLED are
// terminal.
var NextStatuses = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// CanTransition reports whether from → to is a legal status change.
func CanTransition(from, to string) bool {
	for _, s := range NextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	Status      string    `gorm:"not null;default:PENDING" json:"status"`
	TotalAmount int64     `gorm:"not null" json:"totalAmount"`
	Address     string    `json:"address"`
	Note        string    `json:"note"`
	OrderDate   time.Time `gorm:"not null" json:"orderDate"`

	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is an immutable snapshot taken at checkout; quantity and unit
// price are never recomputed from the menu afterwards.
type OrderItem struct {
	gorm.Model
	Quantity  int   `gorm:"not null" json:"quantity"`
	UnitPrice int64 `gorm:"not null" json:"unitPrice"`

	OrderID uint  `gorm:"not null" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}
