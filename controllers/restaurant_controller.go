package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/resp"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/services"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/utils"
)

type RestaurantController struct{ Svc *services.RestaurantService }

func NewRestaurantController(s *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Svc: s}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GET /restaurants
func (ctl *RestaurantController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, total, err := ctl.Svc.List(page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Restaurants retrieved successfully", gin.H{
		"items": items, "page": page, "limit": limit, "total": total,
	})
}

// GET /restaurants/:id
func (ctl *RestaurantController) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rest, err := ctl.Svc.Detail(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Restaurant retrieved successfully", rest)
}

// GET /owner/restaurants
func (ctl *RestaurantController) ListMine(c *gin.Context) {
	items, err := ctl.Svc.ListMine(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Restaurants retrieved successfully", items)
}

// POST /owner/restaurants
func (ctl *RestaurantController) Create(c *gin.Context) {
	var req services.RestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Restaurant created successfully", rest)
}

// PATCH /owner/restaurants/:id
func (ctl *RestaurantController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.RestaurantIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := ctl.Svc.Update(utils.CurrentUserID(c), id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Restaurant updated successfully", rest)
}

// DELETE /owner/restaurants/:id
func (ctl *RestaurantController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Svc.Delete(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
