package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/apperr"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/resp"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/repository"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/services"
	"github.com/keyy-tech/multi-restaurant-alx-captsone/utils"
)

// AdminController covers the one admin power in scope: role reassignment.
type AdminController struct {
	UserRepo *repository.UserRepository
}

func NewAdminController(ur *repository.UserRepository) *AdminController {
	return &AdminController{UserRepo: ur}
}

func (ac *AdminController) currentAdmin(c *gin.Context) (*entity.User, bool) {
	user, err := ac.UserRepo.FindByID(utils.CurrentUserID(c))
	if err != nil {
		resp.Unauthorized(c, "unauthorized")
		return nil, false
	}
	return user, true
}

// GET /admin/users
func (ac *AdminController) Users(c *gin.Context) {
	admin, ok := ac.currentAdmin(c)
	if !ok {
		return
	}
	if !services.Authorize(admin, services.ActionListUsers, 0) {
		resp.Error(c, apperr.ErrForbidden)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	users, total, err := ac.UserRepo.List(page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "Users retrieved successfully", gin.H{
		"items": users, "page": page, "limit": limit, "total": total,
	})
}

type ReassignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer owner admin"`
}

// PATCH /admin/users/:id/role
func (ac *AdminController) ReassignRole(c *gin.Context) {
	admin, ok := ac.currentAdmin(c)
	if !ok {
		return
	}
	if !services.Authorize(admin, services.ActionReassignRole, 0) {
		resp.Error(c, apperr.ErrForbidden)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid user id")
		return
	}

	var req ReassignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	affected, err := ac.UserRepo.UpdateRole(uint(id), req.Role)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if affected == 0 {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, "Role reassigned successfully", gin.H{"id": id, "role": req.Role})
}
