package repository

import (
	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Get(id uint) (*entity.MenuItem, error) {
	return r.GetTx(r.DB, id)
}

// GetTx reads a menu item on the caller's connection. Reads issued while a
// transaction is open must go through tx, not the pool.
func (r *MenuRepository) GetTx(tx *gorm.DB, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := tx.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) ListByRestaurant(restID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("restaurant_id = ?", restID).Order("id").Find(&items).Error
	return items, err
}

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) UpdateFields(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

// TakeStock atomically checks and decrements stock; the WHERE clause is the
// race guard: zero rows affected means the quantity is no longer covered.
func (r *MenuRepository) TakeStock(tx *gorm.DB, menuItemID uint, qty int) (bool, error) {
	res := tx.Model(&entity.MenuItem{}).
		Where("id = ? AND is_available = ? AND stock >= ?", menuItemID, true, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RestoreStock credits quantity back, used when a non-terminal order is
// cancelled.
func (r *MenuRepository) RestoreStock(tx *gorm.DB, menuItemID uint, qty int) error {
	return tx.Model(&entity.MenuItem{}).
		Where("id = ?", menuItemID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}
