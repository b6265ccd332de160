package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/resp"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/services"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/utils"
)

type MenuController struct {
	Svc      *services.RestaurantService
	MenuRepo *repository.MenuRepository
}

func NewMenuController(s *services.RestaurantService, mr *repository.MenuRepository) *MenuController {
	return &MenuController{Svc: s, MenuRepo: mr}
}

// GET /restaurants/:id/menu-items
func (ctl *MenuController) ListByRestaurant(c *gin.Context) {
	restID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := ctl.MenuRepo.ListByRestaurant(restID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Menu retrieved successfully", items)
}

// GET /menu-items/:id
func (ctl *MenuController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := ctl.MenuRepo.Get(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Menu item retrieved successfully", item)
}

// POST /owner/restaurants/:id/menu-items
func (ctl *MenuController) Create(c *gin.Context) {
	restID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Svc.CreateMenuItem(utils.CurrentUserID(c), restID, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Menu item created successfully", item)
}

// PATCH /owner/menu-items/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.MenuItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := ctl.Svc.UpdateMenuItem(utils.CurrentUserID(c), id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Menu item updated successfully", item)
}

// DELETE /owner/menu-items/:id
func (ctl *MenuController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Svc.DeleteMenuItem(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
