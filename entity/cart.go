package entity

import (
	"gorm.io/gorm"
)

// Cart is the per-user pending purchase; one row per user, enforced by the
// unique index on UserID. TotalPrice is recomputed after every mutation and
// must always equal the sum of the line snapshots.
type Cart struct {
	gorm.Model
	UserID     uint  `gorm:"not null;uniqueIndex" json:"userId"`
	User       User  `json:"-"`
	TotalPrice int64 `json:"totalPrice"`

	Items []CartItem `json:"items"`
}

// CartItem captures UnitPrice at add time; the live menu price may drift
// afterwards, the snapshot stays authoritative for this cart.
type CartItem struct {
	gorm.Model
	Quantity  int   `gorm:"not null" json:"quantity"`
	UnitPrice int64 `gorm:"not null" json:"unitPrice"`

	CartID uint `gorm:"not null" json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`
}
