package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/internal/landing"
	"github.com/ikkim/landing-studio/internal/storefront"
	"github.com/ikkim/landing-studio/internal/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGeneratorControllerTest() *gin.Engine {
	ctrl := NewGeneratorController()
	public := NewPublicController(nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/storefront/themes", ctrl.ListThemes)
	router.POST("/storefront/preview", ctrl.PreviewStorefront)
	router.GET("/landing/catalog", ctrl.LandingCatalog)
	router.GET("/landing/preview", ctrl.PreviewLanding)
	router.GET("/assets/storefront-runtime.js", public.RuntimeScript)
	return router
}

func TestGeneratorController_ListThemes(t *testing.T) {
	router := setupGeneratorControllerTest()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/storefront/themes", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Themes      []storefront.StoreTheme `json:"themes"`
		Currencies  []string                `json:"currencies"`
		MaxFeatures int                     `json:"maxFeatures"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Themes, len(storefront.Themes()))
	assert.Equal(t, storefront.SupportedCurrencies(), resp.Currencies)
	assert.Equal(t, storefront.MaxFeatures, resp.MaxFeatures)
}

func TestGeneratorController_PreviewStorefront(t *testing.T) {
	router := setupGeneratorControllerTest()

	body, err := json.Marshal(storefrontBody("Vista <Previa>"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/storefront/preview", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Vista &lt;Previa&gt;")
	assert.NotContains(t, w.Body.String(), "<Previa>")
	assert.NotContains(t, w.Body.String(), tracking.Marker)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/storefront/preview", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratorController_LandingCatalog(t *testing.T) {
	router := setupGeneratorControllerTest()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/landing/catalog", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []catalogCategory `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Categories)

	total := 0
	seen := map[string]bool{}
	for _, group := range resp.Categories {
		assert.False(t, seen[group.Category], "category %s listed twice", group.Category)
		seen[group.Category] = true
		for _, seed := range group.Specialties {
			assert.Equal(t, group.Category, seed.Category)
		}
		total += len(group.Specialties)
	}
	assert.Equal(t, len(landing.Seeds()), total)
}

func TestGeneratorController_PreviewLanding(t *testing.T) {
	router := setupGeneratorControllerTest()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/landing/preview?category=health&specialty=dentista&businessName=Sonrisa%20Feliz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sonrisa Feliz")
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
}

func TestPublicController_RuntimeScript(t *testing.T) {
	router := setupGeneratorControllerTest()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/storefront-runtime.js", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storefront.RuntimeVersion, w.Header().Get("X-Runtime-Version"))
	assert.Contains(t, w.Header().Get("Content-Type"), "javascript")
	assert.Equal(t, storefront.RuntimeSource(), w.Body.String())
}
