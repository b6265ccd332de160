package repository

import (
	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) GetWithMenu(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Preload("MenuItems").First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) List(page, limit int) ([]entity.Restaurant, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var total int64
	if err := r.DB.Model(&entity.Restaurant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []entity.Restaurant
	err := r.DB.Order("id DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}

func (r *RestaurantRepository) ListByOwner(ownerID uint) ([]entity.Restaurant, error) {
	var items []entity.Restaurant
	err := r.DB.Where("owner_id = ?", ownerID).Order("id DESC").Find(&items).Error
	return items, err
}

// IsOwnedBy reports whether the restaurant belongs to the user.
func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *RestaurantRepository) UpdateFields(restID uint, fields map[string]any) error {
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", restID).Updates(fields).Error
}

func (r *RestaurantRepository) Delete(restID uint) error {
	return r.DB.Delete(&entity.Restaurant{}, restID).Error
}
