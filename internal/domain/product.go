package domain

// ReferenceProduct is the real-world item a game price is compared against.
// Immutable once loaded from a catalog snapshot; ID is unique within the
// catalog.
type ReferenceProduct struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Price       Money  `json:"price"`
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
	Flag        string `json:"flag"`
	Icon        string `json:"icon,omitempty"`
	Type        string `json:"type,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`
}

// Catalog is a read-only snapshot of the remote product catalog, loaded once
// per session and replaced wholesale on refresh.
type Catalog struct {
	Label    string             `json:"label"`
	Products []ReferenceProduct `json:"products"`
}

// FindProduct returns the product with the given id, or false.
func (c *Catalog) FindProduct(id string) (ReferenceProduct, bool) {
	if c == nil {
		return ReferenceProduct{}, false
	}
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return ReferenceProduct{}, false
}

// CatalogResponse mirrors the remote products.json payload.
type CatalogResponse struct {
	Label     string                    `json:"label"`
	Countries map[string]CatalogCountry `json:"countries"`
}

// CatalogCountry is one country block in the catalog payload.
type CatalogCountry struct {
	Name  string        `json:"name"`
	Flag  string        `json:"flag"`
	Items []CatalogItem `json:"items"`
}

// CatalogItem is one product entry in the catalog payload.
type CatalogItem struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Type     string  `json:"type,omitempty"`
	Source   string  `json:"source,omitempty"`
}
