package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

type CartRepository struct {
	DB *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{DB: db}
}

// GetCartWithItems returns the user's cart; if none exists yet an empty,
// unsaved cart is returned so GET /cart has a stable shape. The connection is
// the caller's choice so checkout can read the cart inside its transaction.
func (r *CartRepository) GetCartWithItems(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).
		Preload("Items").
		Preload("Items.MenuItem").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID, Items: []entity.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetOrCreateCart relies on the unique index on carts.user_id: when two
// requests race past the select, one insert loses and we re-read the winner.
func (r *CartRepository) GetOrCreateCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := tx.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if createErr := tx.Create(&c).Error; createErr != nil {
			if findErr := tx.Where("user_id = ?", userID).First(&c).Error; findErr != nil {
				return nil, createErr
			}
			return &c, nil
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetItemForUser loads a cart line, scoped to the owning user.
func (r *CartRepository) GetItemForUser(tx *gorm.DB, userID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := tx.
		Where("cart_items.id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// UpsertItem merges into an existing line for the same menu item or creates
// one; the stored total is the caller's job to recompute.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem) (*entity.CartItem, error) {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ?", cartID, row.MenuItemID).
		First(&exist).Error
	if err == nil {
		exist.Quantity += row.Quantity
		if err := tx.Save(&exist).Error; err != nil {
			return nil, err
		}
		return &exist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row.CartID = cartID
	if err := tx.Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *CartRepository) UpdateItemQty(tx *gorm.DB, itemID uint, qty int) error {
	return tx.Model(&entity.CartItem{}).Where("id = ?", itemID).Update("quantity", qty).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) (int64, error) {
	res := tx.Unscoped().
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) error {
	var c entity.Cart
	if err := tx.Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Unscoped().Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", c.ID).Update("total_price", 0).Error
}

// DeleteCart removes the cart row and its items after checkout. Deletes are
// unscoped: a soft-deleted cart would keep its user_id slot in the unique
// index and block the next get-or-create.
func (r *CartRepository) DeleteCart(tx *gorm.DB, cartID uint) error {
	if err := tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&entity.Cart{}, cartID).Error
}

// RecomputeTotal rewrites the stored total from the line snapshots in one
// statement, keeping the invariant total == Σ(unit_price × quantity).
func (r *CartRepository) RecomputeTotal(tx *gorm.DB, cartID uint) error {
	return tx.Exec(`
		UPDATE carts
		   SET total_price = COALESCE(
				(SELECT SUM(unit_price * quantity) FROM cart_items
				  WHERE cart_id = carts.id AND deleted_at IS NULL), 0)
		 WHERE id = ?
	`, cartID).Error
}
