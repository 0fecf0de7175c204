package domain

import "context"

// CatalogClient fetches the remote product catalog snapshot.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) (*Catalog, error)
}

// RateClient fetches the exchange-rate snapshot anchored at USD.
// Implementations must never fail: on any fetch or parse error they return
// the fallback table instead.
type RateClient interface {
	FetchRates(ctx context.Context) RateTable
}

// PreferenceChange describes one changed preference key.
type PreferenceChange struct {
	Key      string
	NewValue any
}

// PreferenceStore is a key-value store with change notifications, mirroring
// the extension storage the content script listens on.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any) error
	// SetAll stores several keys and delivers them to watchers as one batch.
	SetAll(ctx context.Context, values map[string]any) error
	// Watch registers a callback invoked with the batch of changed keys
	// after every Set. The returned func unsubscribes.
	Watch(fn func(changes []PreferenceChange)) (unsubscribe func())
}
