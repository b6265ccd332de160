// Package resp writes the response envelope every endpoint returns:
// {"msg": ..., "data": ..., "status": true|false}.
package resp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/pkg/apperr"
)

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, gin.H{"msg": msg, "data": data, "status": true})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, gin.H{"msg": msg, "data": data, "status": true})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"msg": msg, "data": nil, "status": false})
}

func BadRequest(c *gin.Context, msg string)   { Fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)    { Fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)     { Fail(c, http.StatusNotFound, msg) }

// Error maps a service error onto the envelope with the right status code.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound):
		Fail(c, http.StatusNotFound, apperr.ErrNotFound.Error())
	case errors.Is(err, apperr.ErrForbidden):
		Fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrOutOfStock),
		errors.Is(err, apperr.ErrInsufficientStock),
		errors.Is(err, apperr.ErrEmptyCart),
		errors.Is(err, apperr.ErrOrderProcessed),
		errors.Is(err, apperr.ErrOrderCompleted):
		Fail(c, http.StatusBadRequest, err.Error())
	default:
		Fail(c, http.StatusInternalServerError, err.Error())
	}
}
