package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/resp"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/services"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/utils"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	out, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Cart retrieved successfully", out)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.Add(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "Item added successfully", item)
}

type UpdateQtyRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PATCH /cart/items/:id
func (h *CartController) UpdateQty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.UpdateQty(utils.CurrentUserID(c), id, req.Quantity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Item updated successfully", item)
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.RemoveItem(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
