package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/models"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/nugamoto/nugamoto/backend/internal/types"
)

type UnitHandler struct {
	units          service.IUnitService
	convertLimiter []gin.HandlerFunc
}

// NewUnitHandler creates the unit handler. convertLimiter runs in front of
// the convert endpoint.
func NewUnitHandler(units service.IUnitService, convertLimiter ...gin.HandlerFunc) *UnitHandler {
	return &UnitHandler{
		units:          units,
		convertLimiter: convertLimiter,
	}
}

func (h *UnitHandler) RegisterRoutes(router *gin.RouterGroup) {
	units := router.Group("/units")
	{
		units.POST("/", h.CreateUnit)
		units.GET("/", h.ListUnits)

		units.POST("/conversions/", h.CreateConversion)
		units.GET("/conversions/", h.ListConversions)
		units.PATCH("/conversions/:from_id/:to_id", h.UpdateConversion)
		units.DELETE("/conversions/:from_id/:to_id", h.DeleteConversion)

		units.GET("/:id", h.GetUnit)
		units.PATCH("/:id", h.UpdateUnit)
		units.DELETE("/:id", h.DeleteUnit)
		units.GET("/:id/conversions", h.GetUnitWithConversions)
		units.POST("/:id/convert-to/:to_id", append(h.convertLimiter, h.ConvertValue)...)
		units.GET("/:id/can-convert-to/:to_id", h.CanConvert)
	}
}

func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req types.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.units.CreateUnit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandler) ListUnits(c *gin.Context) {
	var unitType *models.UnitType
	if raw := c.Query("unit_type"); raw != "" {
		t := models.UnitType(raw)
		unitType = &t
	}

	units, err := h.units.ListUnits(c.Request.Context(), unitType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) GetUnit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	unit, err := h.units.GetUnit(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) GetUnitWithConversions(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	unit, err := h.units.GetUnitWithConversions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unit, err := h.units.UpdateUnit(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.units.DeleteUnit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UnitHandler) CreateConversion(c *gin.Context) {
	var req types.CreateUnitConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.units.CreateConversion(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func (h *UnitHandler) ListConversions(c *gin.Context) {
	from, ok := uintQuery(c, "from_unit_id", false)
	if !ok {
		return
	}
	to, ok := uintQuery(c, "to_unit_id", false)
	if !ok {
		return
	}

	convs, err := h.units.ListConversions(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

func (h *UnitHandler) UpdateConversion(c *gin.Context) {
	from, ok := uintParam(c, "from_id")
	if !ok {
		return
	}
	to, ok := uintParam(c, "to_id")
	if !ok {
		return
	}
	var req types.UpdateUnitConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.units.UpdateConversion(c.Request.Context(), from, to, req.Factor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *UnitHandler) DeleteConversion(c *gin.Context) {
	from, ok := uintParam(c, "from_id")
	if !ok {
		return
	}
	to, ok := uintParam(c, "to_id")
	if !ok {
		return
	}

	if err := h.units.DeleteConversion(c.Request.Context(), from, to); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UnitHandler) ConvertValue(c *gin.Context) {
	from, ok := uintParam(c, "id")
	if !ok {
		return
	}
	to, ok := uintParam(c, "to_id")
	if !ok {
		return
	}
	value, ok := valueQuery(c)
	if !ok {
		return
	}

	result, err := h.units.ConvertValue(c.Request.Context(), value, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UnitHandler) CanConvert(c *gin.Context) {
	from, ok := uintParam(c, "id")
	if !ok {
		return
	}
	to, ok := uintParam(c, "to_id")
	if !ok {
		return
	}

	can, err := h.units.CanConvert(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"can_convert": can})
}
