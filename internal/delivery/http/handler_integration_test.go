package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gamebites/backend/config"
	"github.com/gamebites/backend/internal/infrastructure/catalog"
	"github.com/gamebites/backend/internal/infrastructure/prefs"
	"github.com/gamebites/backend/internal/infrastructure/rates"
	"github.com/gamebites/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	os.Exit(exitCode)
}

const catalogPayload = `{
	"label": "SteamBite",
	"countries": {
		"US": {
			"name": "United States",
			"flag": "🇺🇸",
			"items": [
				{"id": "bigmac_us", "label": "Big Mac", "price": 5.29, "currency": "USD", "type": "food"}
			]
		},
		"DE": {
			"name": "Germany",
			"flag": "🇩🇪",
			"items": [
				{"id": "doner_de", "label": "Döner", "price": 7.5, "currency": "EUR", "type": "food"}
			]
		}
	}
}`

const storePageHTML = `<html><body>
<div class="game_area_purchase_game">
	<div class="game_purchase_action_bg">
		<div class="game_purchase_price price">$10.58</div>
	</div>
</div>
</body></html>`

// newTestStack wires real clients against httptest backends and returns the
// router plus the preference store.
func newTestStack(t *testing.T) (*gin.Engine, *prefs.MemoryStore) {
	t.Helper()

	catalogServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogPayload))
	}))
	t.Cleanup(catalogServer.Close)

	ratesServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rates": {"EUR": 0.92, "TRY": 34.5, "GBP": 0.79}}`))
	}))
	t.Cleanup(ratesServer.Close)

	store := prefs.NewMemoryStore()
	scanService := usecase.NewScanService(
		catalog.NewClient(catalogServer.URL),
		rates.NewClient(ratesServer.URL, 0),
		store,
		usecase.ScanServiceConfig{},
	)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*"},
		},
		Catalog: config.CatalogConfig{BaseURL: catalogServer.URL},
		Rates:   config.RatesConfig{BaseURL: ratesServer.URL},
	}

	handler := NewHandler(scanService, store)
	return SetupRouter(cfg, handler), store
}

func TestHealthCheckEndpoint(t *testing.T) {
	router, _ := newTestStack(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "gamebites-backend" {
		t.Errorf("service = %v, want gamebites-backend", response["service"])
	}
}

func TestAnnotateEndpoint(t *testing.T) {
	t.Run("injects a badge for a qualifying price element", func(t *testing.T) {
		router, _ := newTestStack(t)

		body, _ := json.Marshal(map[string]string{
			"html":    storePageHTML,
			"pageUrl": "https://store.steampowered.com/app/361800/",
		})
		req, _ := http.NewRequest("POST", "/api/v1/annotate", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}

		var result usecase.AnnotateResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}

		if len(result.Badges) != 1 {
			t.Fatalf("Badges = %d, want 1", len(result.Badges))
		}
		badge := result.Badges[0]
		if badge.Result.Quantity != 2 {
			t.Errorf("Quantity = %v, want 2", badge.Result.Quantity)
		}
		if badge.Result.QuantityDisplay != "2" {
			t.Errorf("QuantityDisplay = %q, want 2", badge.Result.QuantityDisplay)
		}
		if badge.Product.ID != "bigmac_us" {
			t.Errorf("Product.ID = %q, want bigmac_us", badge.Product.ID)
		}
		if !strings.Contains(result.HTML, "gamebites-wrapper") {
			t.Error("annotated HTML does not contain the badge wrapper")
		}
	})

	t.Run("returns unmodified html for non-app pages", func(t *testing.T) {
		router, _ := newTestStack(t)

		body, _ := json.Marshal(map[string]string{
			"html":    storePageHTML,
			"pageUrl": "https://store.steampowered.com/search/?term=game",
		})
		req, _ := http.NewRequest("POST", "/api/v1/annotate", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var result usecase.AnnotateResult
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(result.Badges) != 0 {
			t.Errorf("Badges = %d, want 0", len(result.Badges))
		}
		if strings.Contains(result.HTML, "gamebites-wrapper") {
			t.Error("non-app page should not be annotated")
		}
	})

	t.Run("rejects a missing html field", func(t *testing.T) {
		router, _ := newTestStack(t)

		req, _ := http.NewRequest("POST", "/api/v1/annotate", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("returns 503 when the catalog is unavailable", func(t *testing.T) {
		downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer downServer.Close()

		store := prefs.NewMemoryStore()
		scanService := usecase.NewScanService(
			catalog.NewClient(downServer.URL),
			rates.NewClient(downServer.URL, 0),
			store,
			usecase.ScanServiceConfig{},
		)
		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test", AllowedOrigins: []string{"chrome-extension://*"}},
		}
		router := SetupRouter(cfg, NewHandler(scanService, store))

		body, _ := json.Marshal(map[string]string{"html": storePageHTML})
		req, _ := http.NewRequest("POST", "/api/v1/annotate", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestCatalogEndpoint(t *testing.T) {
	router, _ := newTestStack(t)

	req, _ := http.NewRequest("GET", "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	var response struct {
		Label    string `json:"label"`
		Products []struct {
			ID          string `json:"id"`
			CountryCode string `json:"countryCode"`
		} `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Label != "SteamBite" {
		t.Errorf("label = %q, want SteamBite", response.Label)
	}
	if len(response.Products) != 2 {
		t.Errorf("products = %d, want 2", len(response.Products))
	}
}

func TestPreferencesEndpoints(t *testing.T) {
	t.Run("GET returns defaults when nothing stored", func(t *testing.T) {
		router, _ := newTestStack(t)

		req, _ := http.NewRequest("GET", "/api/v1/preferences", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["selectedProduct"] != "bigmac_us" {
			t.Errorf("selectedProduct = %v, want bigmac_us", response["selectedProduct"])
		}
		if response["selectedCurrency"] != "USD" {
			t.Errorf("selectedCurrency = %v, want USD", response["selectedCurrency"])
		}
		if response["badgeVisible"] != true {
			t.Errorf("badgeVisible = %v, want true", response["badgeVisible"])
		}
	})

	t.Run("PUT stores values and returns the merged snapshot", func(t *testing.T) {
		router, _ := newTestStack(t)

		payload := `{"selectedProduct": "doner_de", "selectedCurrency": "EUR"}`
		req, _ := http.NewRequest("PUT", "/api/v1/preferences", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if response["selectedProduct"] != "doner_de" {
			t.Errorf("selectedProduct = %v, want doner_de", response["selectedProduct"])
		}
		if response["selectedCurrency"] != "EUR" {
			t.Errorf("selectedCurrency = %v, want EUR", response["selectedCurrency"])
		}
	})

	t.Run("PUT rejects an empty body", func(t *testing.T) {
		router, _ := newTestStack(t)

		req, _ := http.NewRequest("PUT", "/api/v1/preferences", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
