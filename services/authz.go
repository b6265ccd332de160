package services

import (
	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

type Action string

const (
	ActionManageRestaurant Action = "restaurant:manage"
	ActionManageMenu       Action = "menu:manage"
	ActionManageCart       Action = "cart:manage"
	ActionManageOrder      Action = "order:manage"
	ActionListUsers        Action = "user:list"
	ActionReassignRole     Action = "user:reassign-role"
)

// Authorize is the single allow/deny decision for mutations. resourceOwnerID
// is the user who owns the resource being touched (restaurant owner, or the
// cart/order holder). Route-level role gates narrow who reaches a handler;
// this answers whether this caller may touch this resource.
func Authorize(user *entity.User, action Action, resourceOwnerID uint) bool {
	if user == nil {
		return false
	}
	switch action {
	case ActionManageRestaurant, ActionManageMenu:
		return user.Role == entity.RoleOwner && user.ID == resourceOwnerID
	case ActionManageCart, ActionManageOrder:
		// any authenticated user, but only on their own cart/orders
		return user.ID == resourceOwnerID
	case ActionListUsers, ActionReassignRole:
		return user.Role == entity.RoleAdmin
	default:
		return false
	}
}
