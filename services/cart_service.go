package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/apperr"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
)

// CartService mutates a user's single cart. Unit prices are snapshotted
// at add time and the stored total is recomputed after every mutation.
type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type CartOut struct {
	Cart  *entity.Cart `json:"cart"`
	Total int64        `json:"total"`
}

func (s *CartService) Get(userID uint) (*CartOut, error) {
	c, err := s.CartRepo.GetCartWithItems(s.DB, userID)
	if err != nil {
		return nil, err
	}
	return &CartOut{Cart: c, Total: c.TotalPrice}, nil
}

// Add puts quantity of a menu item into the user's cart, creating the cart
// on first use. A line for the same menu item is merged, not duplicated; the
// unit price is captured from the menu at this moment.
func (s *CartService) Add(userID uint, in *AddToCartIn) (*entity.CartItem, error) {
	if in.Quantity < 1 {
		return nil, apperr.ErrValidation
	}

	m, err := s.MenuRepo.Get(in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if !m.IsAvailable || m.Stock < 1 {
		return nil, apperr.ErrOutOfStock
	}

	var out *entity.CartItem
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		// stock bound counts what is already in the cart for this item
		var existing entity.CartItem
		inCart := 0
		if err := tx.Where("cart_id = ? AND menu_item_id = ?", cart.ID, m.ID).
			First(&existing).Error; err == nil {
			inCart = existing.Quantity
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if inCart+in.Quantity > m.Stock {
			return apperr.ErrInsufficientStock
		}

		line := &entity.CartItem{
			MenuItemID: m.ID,
			Quantity:   in.Quantity,
			UnitPrice:  m.Price,
		}
		saved, err := s.CartRepo.UpsertItem(tx, cart.ID, line)
		if err != nil {
			return err
		}
		if err := s.CartRepo.RecomputeTotal(tx, cart.ID); err != nil {
			return err
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateQty re-checks the live stock bound before changing a line.
func (s *CartService) UpdateQty(userID, itemID uint, qty int) (*entity.CartItem, error) {
	if qty < 1 {
		return nil, apperr.ErrValidation
	}

	var out *entity.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		item, err := s.CartRepo.GetItemForUser(tx, userID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		m, err := s.MenuRepo.GetTx(tx, item.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if qty > m.Stock {
			return apperr.ErrInsufficientStock
		}

		if err := s.CartRepo.UpdateItemQty(tx, item.ID, qty); err != nil {
			return err
		}
		if err := s.CartRepo.RecomputeTotal(tx, item.CartID); err != nil {
			return err
		}
		item.Quantity = qty
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		item, err := s.CartRepo.GetItemForUser(tx, userID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if _, err := s.CartRepo.RemoveItem(tx, userID, itemID); err != nil {
			return err
		}
		return s.CartRepo.RecomputeTotal(tx, item.CartID)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, userID)
	})
}
