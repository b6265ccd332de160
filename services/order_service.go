package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/apperr"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
)

// OrderService owns the checkout flow and the order status machine.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository

	Events []OrderEvents
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	menuRepo *repository.MenuRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, MenuRepo: menuRepo}
}

func (s *OrderService) emitCreated(o *entity.Order) {
	for _, e := range s.Events {
		e.OrderCreated(o)
	}
}

func (s *OrderService) emitStatus(orderID, userID uint, status string) {
	for _, e := range s.Events {
		e.OrderStatusChanged(orderID, userID, status)
	}
}

type CheckoutIn struct {
	Address string `json:"address"`
	Note    string `json:"note"`
}

// Checkout converts the user's cart into a PENDING order. The cart read,
// stock re-check and decrement, order plus item snapshots, and cart deletion
// all run in one transaction; any failure rolls the whole conversion back and
// leaves the cart untouched. Reading the cart inside the transaction means a
// line committed by a concurrent add is either part of the order or still in
// the cart, never silently dropped. TakeStock's guarded UPDATE is what makes
// two competing checkouts over the same item resolve to one winner.
func (s *OrderService) Checkout(userID uint, in *CheckoutIn) (*entity.Order, error) {
	var out *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetCartWithItems(tx, userID)
		if err != nil {
			return err
		}
		if cart.ID == 0 || len(cart.Items) == 0 {
			return apperr.ErrEmptyCart
		}

		var total int64
		for _, it := range cart.Items {
			taken, err := s.MenuRepo.TakeStock(tx, it.MenuItemID, it.Quantity)
			if err != nil {
				return err
			}
			if !taken {
				return apperr.ErrInsufficientStock
			}
			total += it.UnitPrice * int64(it.Quantity)
		}

		order := entity.Order{
			Status:      entity.OrderPending,
			TotalAmount: total,
			Address:     in.Address,
			Note:        in.Note,
			OrderDate:   time.Now(),
			UserID:      userID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, it := range cart.Items {
			oi := entity.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Quantity:   it.Quantity,
				UnitPrice:  it.UnitPrice,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		if err := s.CartRepo.DeleteCart(tx, cart.ID); err != nil {
			return err
		}

		out = &order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitCreated(out)
	return out, nil
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(s.DB, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

type UpdateOrderIn struct {
	Address *string `json:"address"`
	Note    *string `json:"note"`
	Status  *string `json:"status" binding:"omitempty,oneof=PENDING PROCESSING COMPLETED CANCELLED"`
}

// Update changes fields of a PENDING order and/or advances the status.
// Field edits on a processed order and illegal transitions both fail with
// ErrOrderProcessed; the status change is a guarded compare-and-set, so a
// concurrent transition loses the same way an illegal one does.
func (s *OrderService) Update(userID, orderID uint, in *UpdateOrderIn) (*entity.Order, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	fields := map[string]any{}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Note != nil {
		fields["note"] = *in.Note
	}

	// an empty or same-status payload is still an update attempt, and update
	// attempts on a processed order fail
	if len(fields) == 0 && (in.Status == nil || *in.Status == o.Status) {
		if o.Status != entity.OrderPending {
			return nil, apperr.ErrOrderProcessed
		}
		return s.DetailForUser(userID, orderID)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if o.Status != entity.OrderPending {
				return apperr.ErrOrderProcessed
			}
			affected, err := s.Repo.UpdateFieldsGuard(tx, o.ID, fields)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.ErrOrderProcessed
			}
		}

		if in.Status != nil && *in.Status != o.Status {
			if !entity.CanTransition(o.Status, *in.Status) {
				return apperr.ErrOrderProcessed
			}
			affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, *in.Status)
			if err != nil {
				return err
			}
			if affected == 0 {
				return apperr.ErrOrderProcessed
			}
			// cancelling through PATCH restores stock like DELETE does
			if *in.Status == entity.OrderCancelled {
				if err := s.restoreStock(tx, o.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status != o.Status {
		s.emitStatus(o.ID, userID, *in.Status)
	}
	return s.DetailForUser(userID, orderID)
}

// restoreStock credits every line's quantity back to its menu item. It runs
// inside the caller's transaction, reads included.
func (s *OrderService) restoreStock(tx *gorm.DB, orderID uint) error {
	items, err := s.Repo.GetOrderItems(tx, orderID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := s.MenuRepo.RestoreStock(tx, it.MenuItemID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Cancel moves a non-terminal order to CANCELLED and restores the
// decremented stock, so cancelled inventory is sellable again.
func (s *OrderService) Cancel(userID, orderID uint) error {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	if o.Status == entity.OrderCompleted {
		return apperr.ErrOrderCompleted
	}
	if o.Status == entity.OrderCancelled {
		return apperr.ErrOrderProcessed
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, entity.OrderCancelled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.ErrOrderProcessed
		}
		return s.restoreStock(tx, o.ID)
	})
	if err != nil {
		return err
	}

	s.emitStatus(o.ID, userID, entity.OrderCancelled)
	return nil
}
