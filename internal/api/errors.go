package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/conversion"
	"github.com/nugamoto/nugamoto/backend/internal/logger"
	"github.com/nugamoto/nugamoto/backend/internal/middleware"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/nugamoto/nugamoto/backend/internal/validator"
	"go.uber.org/zap"
)

var notFoundErrors = []error{
	service.ErrUnitNotFound,
	service.ErrFoodItemNotFound,
	service.ErrRecipeNotFound,
	service.ErrIngredientNotFound,
	service.ErrConversionNotFound,
	service.ErrInventoryNotFound,
}

var badRequestErrors = []error{
	service.ErrDuplicateUnit,
	service.ErrUnitInUse,
	service.ErrDuplicateConversion,
	service.ErrDuplicateFoodItem,
	service.ErrFoodItemMismatch,
	service.ErrDuplicateIngredient,
	service.ErrInvalidValue,
	service.ErrMissingAmount,
	service.ErrInvalidReference,
	conversion.ErrUnresolvable,
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, err error) {
	var fieldErrs validator.FieldErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "details": fieldErrs})
		return
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if errors.Is(err, service.ErrExportDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	logger.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// uintParam reads a positive integer path parameter, answering 400 on failure
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// uintQuery reads a positive integer query parameter. Missing parameters
// return nil unless required.
func uintQuery(c *gin.Context, name string, required bool) (*uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		if required {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
			return nil, false
		}
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

func valueQuery(c *gin.Context) (float64, bool) {
	raw, ok := c.GetQuery("value")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value"})
		return 0, false
	}
	return v, true
}
