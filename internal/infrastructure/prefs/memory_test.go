package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/gamebites/backend/internal/domain"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{
			name:  "store and retrieve string",
			key:   domain.KeySelectedProduct,
			value: "doner_de",
		},
		{
			name:  "store and retrieve bool",
			key:   domain.KeyBadgeVisible,
			value: false,
		},
		{
			name:  "store and retrieve float",
			key:   domain.KeyCustomPrice,
			value: 4.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Set(ctx, tt.key, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := store.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "never-set")
	if !errors.Is(err, domain.ErrPreferenceNotFound) {
		t.Errorf("Get() error = %v, want ErrPreferenceNotFound", err)
	}
}

func TestMemoryStore_Watch(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var received [][]domain.PreferenceChange
	unsubscribe := store.Watch(func(changes []domain.PreferenceChange) {
		received = append(received, changes)
	})

	if err := store.Set(ctx, domain.KeySelectedProduct, "doner_de"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if len(received) != 1 || len(received[0]) != 1 {
		t.Fatalf("got %d notifications, want 1 with a single change", len(received))
	}
	if received[0][0].Key != domain.KeySelectedProduct || received[0][0].NewValue != "doner_de" {
		t.Errorf("change = %+v", received[0][0])
	}

	unsubscribe()
	if err := store.Set(ctx, domain.KeySelectedProduct, "bigmac_us"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if len(received) != 1 {
		t.Errorf("got %d notifications after unsubscribe, want 1", len(received))
	}
}

func TestMemoryStore_SetAllBatches(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var batches [][]domain.PreferenceChange
	defer store.Watch(func(changes []domain.PreferenceChange) {
		batches = append(batches, changes)
	})()

	values := map[string]any{
		domain.KeySelectedProduct:  "doner_de",
		domain.KeySelectedCurrency: "EUR",
		domain.KeyBadgeVisible:     false,
	}
	if err := store.SetAll(ctx, values); err != nil {
		t.Fatalf("SetAll() error = %v", err)
	}

	if len(batches) != 1 {
		t.Fatalf("got %d notifications, want 1 batch", len(batches))
	}
	if len(batches[0]) != 3 {
		t.Errorf("batch carries %d changes, want 3", len(batches[0]))
	}
	if store.Size() != 3 {
		t.Errorf("Size() = %d, want 3", store.Size())
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, domain.KeySelectedProduct, "doner_de"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.Clear()
	if store.Size() != 0 {
		t.Errorf("Size() after Clear = %d, want 0", store.Size())
	}
}

func TestLoadSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields defaults", func(t *testing.T) {
		settings := LoadSettings(ctx, NewMemoryStore())
		want := domain.DefaultSettings()
		if settings != want {
			t.Errorf("LoadSettings() = %+v, want %+v", settings, want)
		}
	})

	t.Run("stored values override defaults", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set(ctx, domain.KeySelectedProduct, "doner_de")
		_ = store.Set(ctx, domain.KeySelectedCurrency, "EUR")
		_ = store.Set(ctx, domain.KeyBadgeVisible, false)

		settings := LoadSettings(ctx, store)
		if settings.SelectedProduct != "doner_de" {
			t.Errorf("SelectedProduct = %s", settings.SelectedProduct)
		}
		if settings.SelectedCurrency != domain.CurrencyEUR {
			t.Errorf("SelectedCurrency = %s", settings.SelectedCurrency)
		}
		if settings.BadgeVisible {
			t.Error("BadgeVisible = true, want false")
		}
	})

	t.Run("unsupported currency normalizes to USD", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set(ctx, domain.KeySelectedCurrency, "XYZ")

		settings := LoadSettings(ctx, store)
		if settings.SelectedCurrency != domain.CurrencyUSD {
			t.Errorf("SelectedCurrency = %s, want USD", settings.SelectedCurrency)
		}
	})

	t.Run("wrong value types are ignored", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set(ctx, domain.KeySelectedProduct, 42)
		_ = store.Set(ctx, domain.KeyBadgeVisible, "yes")

		settings := LoadSettings(ctx, store)
		want := domain.DefaultSettings()
		if settings != want {
			t.Errorf("LoadSettings() = %+v, want defaults", settings)
		}
	})

	t.Run("custom price accepts integer values", func(t *testing.T) {
		store := NewMemoryStore()
		_ = store.Set(ctx, domain.KeyCustomPrice, 7)

		settings := LoadSettings(ctx, store)
		if settings.CustomPrice != 7 {
			t.Errorf("CustomPrice = %v, want 7", settings.CustomPrice)
		}
	})
}

func TestAnyRecognized(t *testing.T) {
	tests := []struct {
		name    string
		changes []domain.PreferenceChange
		want    bool
	}{
		{
			name:    "recognized key",
			changes: []domain.PreferenceChange{{Key: domain.KeyBadgeVisible, NewValue: false}},
			want:    true,
		},
		{
			name: "mixed batch with one recognized key",
			changes: []domain.PreferenceChange{
				{Key: "themeColor", NewValue: "dark"},
				{Key: domain.KeySelectedCurrency, NewValue: "EUR"},
			},
			want: true,
		},
		{
			name:    "only unrecognized keys",
			changes: []domain.PreferenceChange{{Key: "themeColor", NewValue: "dark"}},
			want:    false,
		},
		{
			name: "empty batch",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnyRecognized(tt.changes); got != tt.want {
				t.Errorf("AnyRecognized() = %v, want %v", got, tt.want)
			}
		})
	}
}
