package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/nugamoto/nugamoto/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/", h.CreateRecipe)
		recipes.GET("/", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/:id/ingredients/", h.AddIngredient)
		recipes.GET("/:id/ingredients/", h.ListIngredients)
		recipes.PATCH("/:id/ingredients/:food_item_id", h.UpdateIngredient)
		recipes.DELETE("/:id/ingredients/:food_item_id", h.DeleteIngredient)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	skip, ok := intQuery(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", service.DefaultFoodItemLimit)
	if !ok {
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) AddIngredient(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.recipes.AddIngredient(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ingredient)
}

func (h *RecipeHandler) ListIngredients(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ingredients, err := h.recipes.ListIngredients(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *RecipeHandler) UpdateIngredient(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := uintParam(c, "food_item_id")
	if !ok {
		return
	}
	var req types.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.recipes.UpdateIngredient(c.Request.Context(), id, foodID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

func (h *RecipeHandler) DeleteIngredient(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := uintParam(c, "food_item_id")
	if !ok {
		return
	}

	if err := h.recipes.DeleteIngredient(c.Request.Context(), id, foodID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
