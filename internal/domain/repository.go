package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient defines the interface for fetching the offer table from an
// external price feed. The feed supplies the full table for the current
// snapshot; paging is the feed's concern, not the engine's.
type CatalogClient interface {
	FetchOffers(ctx context.Context) ([]PriceOffer, error)
}
