package usecase

import (
	"sync"

	"github.com/gamebites/backend/internal/domain"
	"github.com/gamebites/backend/internal/infrastructure/page"
)

// PriceSelectors are the class names of known storefront price blocks.
// The storefront's markup is not ours and has changed over time, so every
// historical and current variant is tried, in this declared order.
var PriceSelectors = []string{
	"game_purchase_price",
	"discount_final_price",
	"salepreviewwidgets_StoreSalePriceBox_Wh0L8",
	"Wh0L8",
}

// purchaseContainerClasses are the enclosing purchase/discount blocks a
// badge is inserted before. A price element with no such ancestor is left
// unprocessed and retried on the next scan.
var purchaseContainerClasses = []string{"discount_block", "game_purchase_action_bg"}

// ProcessedAttr marks a price element whose badge was successfully inserted.
const ProcessedAttr = "data-gamebite-processed"

// Badge records one successful injection during a scan pass.
type Badge struct {
	Selector  string                   `json:"selector"`
	PriceText string                   `json:"priceText"`
	Product   domain.ReferenceProduct  `json:"product"`
	Result    domain.EquivalenceResult `json:"result"`
}

// Session carries the read-only snapshots for one page lifetime: settings,
// catalog, and the rate table chosen at load (live or fallback, never
// swapped mid-session). Scan passes are serialized; each pass is a finite
// synchronous walk, and the processed marker makes concurrent triggers
// idempotent.
type Session struct {
	mutex    sync.Mutex
	settings domain.Settings
	catalog  *domain.Catalog
	rates    domain.RateTable
}

// NewSession builds a session around loaded snapshots.
func NewSession(settings domain.Settings, catalog *domain.Catalog, rates domain.RateTable) *Session {
	return &Session{
		settings: settings,
		catalog:  catalog,
		rates:    rates,
	}
}

// Settings returns the session's current settings snapshot.
func (s *Session) Settings() domain.Settings {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings snapshot. Callers follow up with
// Rescan to apply the change to an already-annotated document.
func (s *Session) UpdateSettings(settings domain.Settings) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.settings = settings
}

// SelectedProduct resolves the comparison item: the custom product when
// custom mode is active, otherwise the selected catalog item, falling back
// to the default item and then to the first catalog entry.
func (s *Session) SelectedProduct() (domain.ReferenceProduct, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.selectedProduct()
}

func (s *Session) selectedProduct() (domain.ReferenceProduct, bool) {
	if s.settings.IsCustomMode && s.settings.CustomName != "" && s.settings.CustomPrice > 0 {
		return domain.ReferenceProduct{
			ID:    "custom",
			Label: s.settings.CustomName,
			Price: domain.Money{
				Amount:   s.settings.CustomPrice,
				Currency: domain.NormalizeCurrency(s.settings.CustomCurrencyCode),
			},
			Icon: s.settings.CustomIcon,
		}, true
	}

	if s.catalog == nil {
		return domain.ReferenceProduct{}, false
	}
	if p, ok := s.catalog.FindProduct(s.settings.SelectedProduct); ok {
		return p, true
	}
	if p, ok := s.catalog.FindProduct(domain.DefaultProductID); ok {
		return p, true
	}
	if len(s.catalog.Products) > 0 {
		return s.catalog.Products[0], true
	}
	return domain.ReferenceProduct{}, false
}

// Scan runs one pass over the document: every selector in order, elements in
// document order, one badge per qualifying price element. Elements that are
// already marked, fail to parse, or have no purchase container are skipped
// silently. Running Scan twice over an unchanged document is a no-op on the
// second pass.
func (s *Session) Scan(doc *page.Document) []Badge {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.scanLocked(doc)
}

// Rescan clears all processed markers and previously injected badge blocks,
// then runs a fresh pass. Used when preferences change.
func (s *Session) Rescan(doc *page.Document) []Badge {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc.RemoveAllClass(WrapperClass)
	for _, selector := range PriceSelectors {
		for _, el := range doc.QueryAllClass(selector) {
			el.RemoveAttr(ProcessedAttr)
		}
	}

	return s.scanLocked(doc)
}

func (s *Session) scanLocked(doc *page.Document) []Badge {
	if !s.settings.BadgeVisible {
		return nil
	}

	product, ok := s.selectedProduct()
	if !ok {
		return nil
	}

	var badges []Badge
	for _, selector := range PriceSelectors {
		for _, el := range doc.QueryAllClass(selector) {
			if badge := s.processElement(selector, el, product); badge != nil {
				badges = append(badges, *badge)
			}
		}
	}
	return badges
}

// processElement runs the parse → convert → calculate → inject pipeline for
// one price element. Every failure is a silent skip; the marker is set only
// after a successful insertion, in the same step as the insertion itself.
func (s *Session) processElement(selector string, el *page.Element, product domain.ReferenceProduct) *Badge {
	if el.ClosestClass(WrapperClass) != nil {
		return nil
	}
	if _, done := el.Attr(ProcessedAttr); done {
		return nil
	}

	priceText := el.Text()
	parsed, ok := ParsePrice(priceText)
	if !ok || parsed.Amount <= 0 {
		return nil
	}

	gamePriceUSD := ToUSD(parsed.Amount, parsed.Currency, s.rates)
	result := Calculate(gamePriceUSD, &product, s.rates, s.settings.SelectedCurrency)
	if result == nil {
		return nil
	}

	container := el.ClosestClass(purchaseContainerClasses...)
	if container == nil {
		return nil
	}

	markup, err := RenderBadge(result, product, priceText, s.rates)
	if err != nil {
		return nil
	}
	if err := container.InsertHTMLBefore(markup); err != nil {
		return nil
	}

	el.SetAttr(ProcessedAttr, "true")
	return &Badge{
		Selector:  selector,
		PriceText: priceText,
		Product:   product,
		Result:    *result,
	}
}
