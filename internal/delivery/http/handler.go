package http

import (
	"errors"
	"net/http"

	"github.com/gamebites/backend/internal/domain"
	"github.com/gamebites/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService *usecase.ScanService
	store       domain.PreferenceStore
}

// NewHandler creates a new HTTP handler
func NewHandler(scanService *usecase.ScanService, store domain.PreferenceStore) *Handler {
	return &Handler{
		scanService: scanService,
		store:       store,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "gamebites-backend",
		"version": "1.0.0",
	})
}

// AnnotateRequest is the payload for the annotate endpoint.
type AnnotateRequest struct {
	HTML    string `json:"html" binding:"required"`
	PageURL string `json:"pageUrl,omitempty"`
}

// Annotate runs the full pipeline over posted page HTML and returns the
// badge-injected document plus badge metadata.
func (h *Handler) Annotate(c *gin.Context) {
	if h.scanService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "annotation service not configured",
		})
		return
	}

	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: html is required"})
		return
	}

	result, err := h.scanService.Annotate(c.Request.Context(), req.HTML, req.PageURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrCatalogUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "product catalog unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "annotation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCatalog returns the loaded product catalog snapshot (for the popup's
// product picker).
func (h *Handler) GetCatalog(c *gin.Context) {
	if h.scanService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "annotation service not configured",
		})
		return
	}

	catalog, err := h.scanService.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "product catalog unavailable"})
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// GetPreferences returns the current settings snapshot (defaults merged in).
func (h *Handler) GetPreferences(c *gin.Context) {
	if h.scanService == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "annotation service not configured",
		})
		return
	}

	c.JSON(http.StatusOK, h.scanService.Settings(c.Request.Context()))
}

// UpdatePreferences stores the posted preference keys. Unrecognized keys are
// stored but never trigger pipeline behavior.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "preference store not configured",
		})
		return
	}

	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil || len(values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: expected a key/value object"})
		return
	}

	if err := h.store.SetAll(c.Request.Context(), values); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store preferences"})
		return
	}

	if h.scanService != nil {
		c.JSON(http.StatusOK, h.scanService.Settings(c.Request.Context()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stored": len(values)})
}
