package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/nugamoto/nugamoto/backend/internal/types"
)

type InventoryHandler struct {
	inventory service.IInventoryService
}

func NewInventoryHandler(inventory service.IInventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/kitchens/:kitchen_id/inventory")
	{
		inventory.POST("/", h.UpsertItem)
		inventory.GET("/", h.ListItems)
		inventory.GET("/expiring", h.ListExpiring)
		inventory.GET("/prompt", h.PromptLines)
		inventory.DELETE("/:item_id", h.DeleteItem)
	}
}

func (h *InventoryHandler) UpsertItem(c *gin.Context) {
	kitchenID, ok := uintParam(c, "kitchen_id")
	if !ok {
		return
	}
	var req types.UpsertInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.inventory.UpsertItem(c.Request.Context(), kitchenID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	kitchenID, ok := uintParam(c, "kitchen_id")
	if !ok {
		return
	}

	items, err := h.inventory.ListItems(c.Request.Context(), kitchenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) ListExpiring(c *gin.Context) {
	kitchenID, ok := uintParam(c, "kitchen_id")
	if !ok {
		return
	}

	items, err := h.inventory.ListExpiring(c.Request.Context(), kitchenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) PromptLines(c *gin.Context) {
	kitchenID, ok := uintParam(c, "kitchen_id")
	if !ok {
		return
	}

	lines, err := h.inventory.PromptLines(c.Request.Context(), kitchenID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.PromptLinesResponse{Lines: lines})
}

func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	kitchenID, ok := uintParam(c, "kitchen_id")
	if !ok {
		return
	}
	itemID, ok := uintParam(c, "item_id")
	if !ok {
		return
	}

	if err := h.inventory.DeleteItem(c.Request.Context(), kitchenID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
