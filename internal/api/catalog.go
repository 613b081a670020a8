package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/service"
)

type CatalogHandler struct {
	catalog service.ICatalogService
}

func NewCatalogHandler(catalog service.ICatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/catalog/export", h.Export)
}

// Export uploads a snapshot of the unit catalog to object storage
func (h *CatalogHandler) Export(c *gin.Context) {
	resp, err := h.catalog.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
