package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/landing-studio/internal/errors"
	"github.com/ikkim/landing-studio/internal/landing"
	"github.com/ikkim/landing-studio/internal/middleware"
	"github.com/ikkim/landing-studio/internal/storefront"
)

const previewStoreID = "preview"

// GeneratorController exposes the generators without persisting anything.
type GeneratorController struct{}

func NewGeneratorController() *GeneratorController {
	return &GeneratorController{}
}

// ListThemes returns the storefront theme catalog
// GET /api/v1/storefront/themes
func (ctrl *GeneratorController) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"themes":      storefront.Themes(),
		"currencies":  storefront.SupportedCurrencies(),
		"maxFeatures": storefront.MaxFeatures,
	})
}

// PreviewStorefront renders a storefront without saving it. Orders placed
// in the preview never leave the browser.
// POST /api/v1/storefront/preview
func (ctrl *GeneratorController) PreviewStorefront(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StorefrontRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid storefront preview request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request body")
		return
	}
	in, err := req.input()
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidFormat, "products must be an array")
		return
	}

	html := storefront.Generate(previewStoreID, in.Config, in.Products, storefront.BackendParams{})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// catalogCategory groups seeds for the editor picker.
type catalogCategory struct {
	Category    string                 `json:"category"`
	Label       string                 `json:"label"`
	Specialties []landing.TemplateSeed `json:"specialties"`
}

// LandingCatalog returns the seed catalog grouped by category
// GET /api/v1/landing/catalog
func (ctrl *GeneratorController) LandingCatalog(c *gin.Context) {
	var groups []catalogCategory
	index := map[string]int{}
	for _, seed := range landing.Seeds() {
		i, ok := index[seed.Category]
		if !ok {
			i = len(groups)
			index[seed.Category] = i
			groups = append(groups, catalogCategory{Category: seed.Category, Label: seed.CategoryLabel})
		}
		groups[i].Specialties = append(groups[i].Specialties, seed)
	}
	c.JSON(http.StatusOK, gin.H{"categories": groups})
}

// PreviewLanding renders a marketing page without saving it
// GET /api/v1/landing/preview?category=&specialty=&businessName=
func (ctrl *GeneratorController) PreviewLanding(c *gin.Context) {
	var req landing.Request
	if err := c.ShouldBindQuery(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid query")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(landing.Generate(req)))
}
