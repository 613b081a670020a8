package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/internal/repository"
	"github.com/nugamoto/nugamoto/backend/internal/service"
	"github.com/nugamoto/nugamoto/backend/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testhelpers.SetupSQLite(t)

	units := repository.NewUnitRepo(db)
	foods := repository.NewFoodItemRepo(db)
	conversions := service.NewConversionService(foods, units)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewUnitHandler(service.NewUnitService(units)).RegisterRoutes(v1)
	NewFoodItemHandler(service.NewFoodService(foods, units), conversions).RegisterRoutes(v1)
	NewRecipeHandler(service.NewRecipeService(repository.NewRecipeRepo(db), foods, conversions)).RegisterRoutes(v1)
	NewInventoryHandler(service.NewInventoryService(repository.NewInventoryRepo(db), foods, conversions, 3,
		service.WithClock(func() time.Time { return testNow }))).RegisterRoutes(v1)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// created posts body and returns the id of the new resource
func created(t *testing.T, router *gin.Engine, path string, body any) uint {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID uint `json:"id"`
	}](t, w).ID
}
