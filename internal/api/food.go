package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/nugamoto/nugamoto/backend/internal/types"
)

type FoodItemHandler struct {
	foods          service.IFoodService
	conversions    service.IConversionService
	convertLimiter []gin.HandlerFunc
}

func NewFoodItemHandler(foods service.IFoodService, conversions service.IConversionService, convertLimiter ...gin.HandlerFunc) *FoodItemHandler {
	return &FoodItemHandler{
		foods:          foods,
		conversions:    conversions,
		convertLimiter: convertLimiter,
	}
}

func (h *FoodItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/food-items")
	{
		foods.POST("/", h.CreateFoodItem)
		foods.GET("/", h.ListFoodItems)
		foods.GET("/:id", h.GetFoodItem)
		foods.GET("/:id/with-conversions", h.GetFoodItemWithConversions)
		foods.PATCH("/:id", h.UpdateFoodItem)
		foods.DELETE("/:id", h.DeleteFoodItem)

		foods.POST("/:id/unit-conversions/", h.CreateConversion)
		foods.GET("/:id/unit-conversions/", h.ListConversions)
		foods.DELETE("/:id/unit-conversions/:from_id/:to_id", h.DeleteConversion)

		foods.POST("/:id/convert/", append(h.convertLimiter, h.ConvertValue)...)
		foods.GET("/:id/can-convert/", h.CanConvert)
		foods.GET("/:id/available-units", h.AvailableUnits)
	}
}

func (h *FoodItemHandler) CreateFoodItem(c *gin.Context) {
	var req types.CreateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.foods.CreateFoodItem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *FoodItemHandler) ListFoodItems(c *gin.Context) {
	skip, ok := intQuery(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", service.DefaultFoodItemLimit)
	if !ok {
		return
	}

	items, err := h.foods.ListFoodItems(c.Request.Context(), models.FoodItemFilters{
		Category: c.Query("category"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *FoodItemHandler) GetFoodItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	item, err := h.foods.GetFoodItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FoodItemHandler) GetFoodItemWithConversions(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	item, err := h.foods.GetFoodItemWithConversions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FoodItemHandler) UpdateFoodItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.foods.UpdateFoodItem(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FoodItemHandler) DeleteFoodItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.foods.DeleteFoodItem(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FoodItemHandler) CreateConversion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req types.CreateFoodItemUnitConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.foods.CreateFoodConversion(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func (h *FoodItemHandler) ListConversions(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	convs, err := h.foods.ListFoodConversions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

func (h *FoodItemHandler) DeleteConversion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	from, ok := uintParam(c, "from_id")
	if !ok {
		return
	}
	to, ok := uintParam(c, "to_id")
	if !ok {
		return
	}

	if err := h.foods.DeleteFoodConversion(c.Request.Context(), id, from, to); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// unitPair reads the required from_unit_id and to_unit_id query parameters
func unitPair(c *gin.Context) (uint, uint, bool) {
	from, ok := uintQuery(c, "from_unit_id", true)
	if !ok {
		return 0, 0, false
	}
	to, ok := uintQuery(c, "to_unit_id", true)
	if !ok {
		return 0, 0, false
	}
	return *from, *to, true
}

func (h *FoodItemHandler) ConvertValue(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	value, ok := valueQuery(c)
	if !ok {
		return
	}
	from, to, ok := unitPair(c)
	if !ok {
		return
	}

	result, err := h.foods.ConvertFoodValue(c.Request.Context(), id, value, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FoodItemHandler) CanConvert(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	from, to, ok := unitPair(c)
	if !ok {
		return
	}

	can, err := h.foods.CanConvertFoodUnits(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"can_convert": can})
}

// AvailableUnits lists every unit the food item can be measured in
func (h *FoodItemHandler) AvailableUnits(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	units, err := h.conversions.AllAvailableUnitsForFoodItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}
