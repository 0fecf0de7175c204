package prefs

import (
	"context"

	"github.com/gamebites/backend/internal/domain"
)

// LoadSettings materializes a Settings snapshot from the store, falling back
// to defaults for absent keys.
func LoadSettings(ctx context.Context, store domain.PreferenceStore) domain.Settings {
	settings := domain.DefaultSettings()

	if v, err := store.Get(ctx, domain.KeySelectedProduct); err == nil {
		if s, ok := v.(string); ok && s != "" {
			settings.SelectedProduct = s
		}
	}
	if v, err := store.Get(ctx, domain.KeySelectedCurrency); err == nil {
		if s, ok := v.(string); ok && s != "" {
			settings.SelectedCurrency = domain.NormalizeCurrency(s)
		}
	}
	if v, err := store.Get(ctx, domain.KeyBadgeVisible); err == nil {
		if b, ok := v.(bool); ok {
			settings.BadgeVisible = b
		}
	}
	if v, err := store.Get(ctx, domain.KeyIsCustomMode); err == nil {
		if b, ok := v.(bool); ok {
			settings.IsCustomMode = b
		}
	}
	if v, err := store.Get(ctx, domain.KeyCustomIcon); err == nil {
		if s, ok := v.(string); ok {
			settings.CustomIcon = s
		}
	}
	if v, err := store.Get(ctx, domain.KeyCustomName); err == nil {
		if s, ok := v.(string); ok {
			settings.CustomName = s
		}
	}
	if v, err := store.Get(ctx, domain.KeyCustomPrice); err == nil {
		if f, ok := toFloat(v); ok {
			settings.CustomPrice = f
		}
	}
	if v, err := store.Get(ctx, domain.KeyCustomCurrency); err == nil {
		if s, ok := v.(string); ok {
			settings.CustomCurrencyCode = domain.NormalizeCurrency(s)
		}
	}

	return settings
}

// AnyRecognized reports whether at least one change touches a key the core
// reacts to. Unrecognized keys never trigger a re-scan.
func AnyRecognized(changes []domain.PreferenceChange) bool {
	for _, ch := range changes {
		if domain.IsRecognizedKey(ch.Key) {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
