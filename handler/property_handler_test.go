package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propfolio/mls-deal-analyzer/dto"
	"github.com/propfolio/mls-deal-analyzer/service"
	"github.com/propfolio/mls-deal-analyzer/store"
)

func newPropertyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	h := NewPropertyHandler(service.NewListingService(nil, nil, st))

	router := gin.New()
	router.GET("/properties/:id", h.GetProperty)
	router.DELETE("/properties/:id", h.DeleteProperty)
	return router
}

func TestGetPropertyNotFound(t *testing.T) {
	router := newPropertyRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/properties/9999", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PROPERTY_NOT_FOUND", resp.Error)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeletePropertyNotFound(t *testing.T) {
	router := newPropertyRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/properties/9999", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PROPERTY_NOT_FOUND", resp.Error)
}

func TestGetPropertyInvalidID(t *testing.T) {
	router := newPropertyRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/properties/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
