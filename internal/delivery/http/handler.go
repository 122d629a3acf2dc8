package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartcart/backend/internal/domain"
	"github.com/smartcart/backend/internal/usecase"
)

const offersCacheKey = "catalog:offers"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender *usecase.RecommendationService
	resolver    *usecase.ListResolver
	catalog     domain.CatalogClient   // nil when no feed is configured
	cache       domain.CacheRepository // nil disables offer-table caching
	catalogTTL  time.Duration
}

// NewHandler creates a new HTTP handler. catalog and cache may be nil;
// without a catalog every request must carry its own offer table.
func NewHandler(
	recommender *usecase.RecommendationService,
	resolver *usecase.ListResolver,
	catalog domain.CatalogClient,
	cache domain.CacheRepository,
	catalogTTL time.Duration,
) *Handler {
	return &Handler{
		recommender: recommender,
		resolver:    resolver,
		catalog:     catalog,
		cache:       cache,
		catalogTTL:  catalogTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "smartcart-backend",
		"version": "1.0.0",
	})
}

// Recommend handles shopping-list recommendation requests. When the request
// omits the offer table, the configured catalog feed supplies it; free-text
// item names are resolved to catalog names before the engine runs.
func (h *Handler) Recommend(c *gin.Context) {
	if h.recommender == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "recommendation service not configured",
		})
		return
	}

	var request domain.RecommendationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	if request.Offers == nil {
		offers, err := h.loadOffers(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrMissingOffers) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "offers are required when no catalog feed is configured",
				})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "catalog feed unavailable",
				"details": err.Error(),
			})
			return
		}
		request.Offers = offers
	}

	if h.resolver != nil {
		request.List = h.resolver.ResolveList(ctx, request.List, usecase.DistinctProducts(request.Offers))
	}

	response, err := h.recommender.Recommend(ctx, &request)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// CatalogProducts returns the distinct product names in the current offer
// table, for list autocomplete in the frontend.
func (h *Handler) CatalogProducts(c *gin.Context) {
	if h.catalog == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no catalog feed configured"})
		return
	}

	offers, err := h.loadOffers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "catalog feed unavailable",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": usecase.DistinctProducts(offers),
	})
}

// loadOffers returns the current offer table, preferring the cached copy.
func (h *Handler) loadOffers(ctx context.Context) ([]domain.PriceOffer, error) {
	if h.catalog == nil {
		return nil, domain.ErrMissingOffers
	}

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, offersCacheKey); err == nil {
			if offers, ok := cached.([]domain.PriceOffer); ok {
				return offers, nil
			}
		}
	}

	offers, err := h.catalog.FetchOffers(ctx)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		// Best effort; serving the fetched table matters more than caching it.
		_ = h.cache.Set(ctx, offersCacheKey, offers, h.catalogTTL)
	}

	return offers, nil
}
