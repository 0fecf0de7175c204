package domain

// Preference store keys recognized by the core. Changes to any other key
// are ignored.
const (
	KeySelectedProduct  = "selectedProduct"
	KeySelectedCurrency = "selectedCurrency"
	KeyBadgeVisible     = "badgeVisible"
	KeyIsCustomMode     = "isCustomMode"
	KeyCustomIcon       = "customIcon"
	KeyCustomName       = "customName"
	KeyCustomPrice      = "customPrice"
	KeyCustomCurrency   = "customCurrencyCode"
)

// DefaultProductID is the catalog item used when no preference is stored.
const DefaultProductID = "bigmac_us"

// Settings is the per-session view of user preferences.
type Settings struct {
	SelectedProduct  string `json:"selectedProduct"`
	SelectedCurrency string `json:"selectedCurrency"`
	BadgeVisible     bool   `json:"badgeVisible"`

	// Custom product mode: when enabled, the comparison item is built from
	// the fields below instead of a catalog lookup.
	IsCustomMode       bool    `json:"isCustomMode,omitempty"`
	CustomIcon         string  `json:"customIcon,omitempty"`
	CustomName         string  `json:"customName,omitempty"`
	CustomPrice        float64 `json:"customPrice,omitempty"`
	CustomCurrencyCode string  `json:"customCurrencyCode,omitempty"`
}

// DefaultSettings returns the settings used before any preference is stored.
func DefaultSettings() Settings {
	return Settings{
		SelectedProduct:  DefaultProductID,
		SelectedCurrency: CurrencyUSD,
		BadgeVisible:     true,
	}
}

// recognizedKeys is the set of preference keys that trigger a re-scan.
var recognizedKeys = map[string]bool{
	KeySelectedProduct:  true,
	KeySelectedCurrency: true,
	KeyBadgeVisible:     true,
	KeyIsCustomMode:     true,
	KeyCustomIcon:       true,
	KeyCustomName:       true,
	KeyCustomPrice:      true,
	KeyCustomCurrency:   true,
}

// IsRecognizedKey reports whether a preference key is one the core reacts to.
func IsRecognizedKey(key string) bool {
	return recognizedKeys[key]
}
