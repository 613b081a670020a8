package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/nugamoto/nugamoto/backend/config"
	"github.com/nugamoto/nugamoto/backend/internal/testhelpers"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopStore struct{}

func (nopStore) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	return nil
}

func (nopStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://example.test/" + key, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:                 "localhost",
		ServerPort:                 "8080",
		RateLimitRequests:          2,
		RateLimitWindow:            time.Minute,
		ExpiringItemsThresholdDays: 3,
	}
}

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestNew(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	server := New(testConfig(), db)
	require.NotNil(t, server)

	w := serve(server, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(server, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogRouteRequiresUploader(t *testing.T) {
	db := testhelpers.SetupSQLite(t)

	w := serve(New(testConfig(), db), http.MethodPost, "/api/v1/catalog/export", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(New(testConfig(), db, WithUploader(nopStore{})), http.MethodPost, "/api/v1/catalog/export", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"catalog/`)
}

func TestConvertRateLimited(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	server := New(testConfig(), db, WithRedis(client))

	w := serve(server, http.MethodPost, "/api/v1/units/", `{"name":"g","type":"weight"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = serve(server, http.MethodPost, "/api/v1/units/", `{"name":"kg","type":"weight","to_base_factor":1000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = serve(server, http.MethodPost, "/api/v1/units/conversions/", `{"from_unit_id":2,"to_unit_id":1,"factor":1000}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for i := 0; i < 2; i++ {
		w = serve(server, http.MethodPost, "/api/v1/units/2/convert-to/1?value=1.5", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	assert.Contains(t, w.Body.String(), `"converted_value":1500`)

	w = serve(server, http.MethodPost, "/api/v1/units/2/convert-to/1?value=1.5", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// only the convert endpoints are limited
	w = serve(server, http.MethodGet, "/api/v1/units/2/can-convert-to/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestShutdownBeforeStart(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	assert.NoError(t, New(testConfig(), db).Shutdown(context.Background()))
}
