package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/apperr"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
)

// RestaurantService covers catalog management: restaurants and their menu
// items, writable only by the owning user.
type RestaurantService struct {
	DB       *gorm.DB
	RestRepo *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
	UserRepo *repository.UserRepository
}

func NewRestaurantService(
	db *gorm.DB,
	rr *repository.RestaurantRepository,
	mr *repository.MenuRepository,
	ur *repository.UserRepository,
) *RestaurantService {
	return &RestaurantService{DB: db, RestRepo: rr, MenuRepo: mr, UserRepo: ur}
}

type RestaurantIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

func (s *RestaurantService) Create(userID uint, in *RestaurantIn) (*entity.Restaurant, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if !Authorize(user, ActionManageRestaurant, userID) {
		return nil, apperr.ErrForbidden
	}

	rest := &entity.Restaurant{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		Phone:       in.Phone,
		OwnerID:     userID,
	}
	if err := s.RestRepo.Create(rest); err != nil {
		// unique (owner_id, name)
		return nil, fmt.Errorf("%w: restaurant name already used", apperr.ErrValidation)
	}
	return rest, nil
}

func (s *RestaurantService) List(page, limit int) ([]entity.Restaurant, int64, error) {
	return s.RestRepo.List(page, limit)
}

func (s *RestaurantService) Detail(restID uint) (*entity.Restaurant, error) {
	return s.RestRepo.GetWithMenu(restID)
}

func (s *RestaurantService) ListMine(userID uint) ([]entity.Restaurant, error) {
	return s.RestRepo.ListByOwner(userID)
}

func (s *RestaurantService) requireOwner(userID, restID uint) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return err
	}
	rest, err := s.RestRepo.Get(restID)
	if err != nil {
		return err
	}
	if !Authorize(user, ActionManageRestaurant, rest.OwnerID) {
		return apperr.ErrForbidden
	}
	return nil
}

func (s *RestaurantService) Update(userID, restID uint, in *RestaurantIn) (*entity.Restaurant, error) {
	if err := s.requireOwner(userID, restID); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"address":     in.Address,
		"phone":       in.Phone,
	}
	if err := s.RestRepo.UpdateFields(restID, fields); err != nil {
		return nil, err
	}
	return s.RestRepo.Get(restID)
}

func (s *RestaurantService) Delete(userID, restID uint) error {
	if err := s.requireOwner(userID, restID); err != nil {
		return err
	}
	return s.RestRepo.Delete(restID)
}

// ----- Menu items -----

type MenuItemIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"min=0"`
	IsAvailable *bool  `json:"isAvailable"`
}

func (s *RestaurantService) CreateMenuItem(userID, restID uint, in *MenuItemIn) (*entity.MenuItem, error) {
	if err := s.requireOwner(userID, restID); err != nil {
		return nil, err
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	m := &entity.MenuItem{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Stock:        in.Stock,
		IsAvailable:  available,
		RestaurantID: restID,
	}
	if err := s.MenuRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *RestaurantService) UpdateMenuItem(userID, menuItemID uint, in *MenuItemIn) (*entity.MenuItem, error) {
	m, err := s.MenuRepo.Get(menuItemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(userID, m.RestaurantID); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"stock":       in.Stock,
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}
	if err := s.MenuRepo.UpdateFields(menuItemID, fields); err != nil {
		return nil, err
	}
	return s.MenuRepo.Get(menuItemID)
}

func (s *RestaurantService) DeleteMenuItem(userID, menuItemID uint) error {
	m, err := s.MenuRepo.Get(menuItemID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(userID, m.RestaurantID); err != nil {
		return err
	}
	return s.MenuRepo.Delete(menuItemID)
}
