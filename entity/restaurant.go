package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	// Name is unique per owner, not globally
	Name        string `gorm:"not null;uniqueIndex:idx_owner_name" json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`

	OwnerID uint `gorm:"not null;uniqueIndex:idx_owner_name" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	MenuItems []MenuItem `json:"-"`
}
