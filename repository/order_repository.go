package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID          uint      `json:"id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, status, total_amount, order_date").
		Where("user_id = ?", userID).
		Order("order_date DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// UpdateStatusGuard is a compare-and-set: the row moves from → to only if it
// still holds the expected status. RowsAffected == 0 means either a
// concurrent transition or an illegal one.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// UpdateFieldsGuard applies field edits only while the order is still
// PENDING.
func (r *OrderRepository) UpdateFieldsGuard(tx *gorm.DB, orderID uint, fields map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, entity.OrderPending).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// GetOrderItems takes the query connection explicitly so callers holding an
// open transaction read through it instead of the pool.
func (r *OrderRepository) GetOrderItems(tx *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := tx.Model(&entity.OrderItem{}).
		Select("id, quantity, unit_price, menu_item_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}
