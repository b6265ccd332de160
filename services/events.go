package services

import (
	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

// OrderEvents receives order lifecycle notifications after the owning
// transaction commits. Implementations must not block the request; failures
// are theirs to log.
type OrderEvents interface {
	OrderCreated(o *entity.Order)
	OrderStatusChanged(orderID, userID uint, status string)
}
