package catalog

import (
	"sort"

	"github.com/gamebites/backend/internal/domain"
)

// Icon asset names keyed by product id. Items without an entry fall back to
// an emoji chosen by product type.
var productIconFiles = map[string]string{
	"bigmac_us":        "bigmac.svg",
	"bigmac_ca":        "bigmac.svg",
	"latte_tall_us":    "latte.svg",
	"latte_tall_uk":    "latte.svg",
	"latte_tall_tr":    "latte.svg",
	"latte_cn":         "latte.svg",
	"latte_de":         "latte.svg",
	"latte_pl":         "latte.svg",
	"baozi_cn":         "baozi.svg",
	"doner_de":         "doner.svg",
	"meal_deal_uk":     "meal_deal.svg",
	"filter_coffee_ca": "black_coffe.svg",
	"cheeseburger_au":  "cheeseburger.svg",
	"flat_white_au":    "latte.svg",
	"croissant_fr":     "croissant.svg",
	"cafe_creme_fr":    "latte.svg",
	"pao_de_queijo_br": "pao_de_queijo.svg",
	"coffee_small_br":  "black_coffe.svg",
	"onigiri_jp":       "onigiri.svg",
	"green_tea_jp":     "green_tea.svg",
	"zapiekanka_pl":    "zapiekanka.svg",
	"simit_tr":         "simit.svg",
}

// Fallback emoji icons by product type.
var productTypeIcons = map[string]string{
	"food":  "🍔",
	"drink": "☕",
}

const defaultProductIcon = "📦"

// IconFor returns the icon reference for a product: a bundled SVG asset name
// when one exists, otherwise a type-based emoji.
func IconFor(id, productType string) string {
	if file, ok := productIconFiles[id]; ok {
		return file
	}
	if emoji, ok := productTypeIcons[productType]; ok {
		return emoji
	}
	return defaultProductIcon
}

// MapToCatalog flattens the country-grouped wire payload into the domain
// catalog snapshot. Countries are walked in sorted order so snapshots are
// deterministic across loads.
func MapToCatalog(resp *domain.CatalogResponse) *domain.Catalog {
	snapshot := &domain.Catalog{Label: resp.Label}

	codes := make([]string, 0, len(resp.Countries))
	for code := range resp.Countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		country := resp.Countries[code]
		for _, item := range country.Items {
			snapshot.Products = append(snapshot.Products, domain.ReferenceProduct{
				ID:    item.ID,
				Label: item.Label,
				Price: domain.Money{
					Amount:   item.Price,
					Currency: domain.NormalizeCurrency(item.Currency),
				},
				CountryCode: code,
				CountryName: country.Name,
				Flag:        country.Flag,
				Icon:        IconFor(item.ID, item.Type),
				Type:        item.Type,
				SourceURL:   item.Source,
			})
		}
	}

	return snapshot
}
