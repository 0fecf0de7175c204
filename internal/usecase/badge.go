package usecase

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gamebites/backend/internal/domain"
)

// WrapperClass marks injected badge blocks; the scanner also uses it to
// recognize price elements that already sit inside a badge.
const WrapperClass = "gamebites-wrapper"

var badgeTemplate = template.Must(template.New("badge").Parse(`<div class="gamebites-wrapper">
  <div class="gamebites-badge" data-gamebites="true">
    {{if .IconFile}}<img src="icons/{{.IconFile}}" alt="{{.ProductLabel}}" class="gamebites-badge-icon-img">{{else}}<span class="gamebites-badge-icon">{{.IconEmoji}}</span>{{end}}
    <span class="gamebites-badge-quantity">{{.Quantity}}</span>
    <span class="gamebites-badge-product">{{.ProductLabel}}</span>
    <button class="gamebites-badge-close" title="Close">×</button>
  </div>
  <div class="gamebites-tooltip" style="display: none;">
    <div class="gamebites-tooltip-row">
      <span class="gamebites-tooltip-label">Game Price:</span>
      <span class="gamebites-tooltip-value">{{.PriceText}}</span>
    </div>
    <div class="gamebites-tooltip-row">
      <span class="gamebites-tooltip-label">In USD:</span>
      <span class="gamebites-tooltip-value">${{.GamePriceUSD}}</span>
    </div>
    {{if .NeedsConversion}}<div class="gamebites-tooltip-row">
      <span class="gamebites-tooltip-label">Exchange Rate:</span>
      <span class="gamebites-tooltip-value highlight">1 USD = {{.ProductRate}} {{.ProductCurrency}}</span>
    </div>{{end}}
    <div class="gamebites-tooltip-row">
      <span class="gamebites-tooltip-label">Product:</span>
      <span class="gamebites-tooltip-value">{{.ProductLabel}}</span>
    </div>
    <div class="gamebites-tooltip-row">
      <span class="gamebites-tooltip-label">Product Price:</span>
      <span class="gamebites-tooltip-value">{{.ProductPriceLocal}} {{.ProductCurrency}}</span>
    </div>
    <div class="gamebites-tooltip-row gamebites-tooltip-result">
      <span>Result:</span>
      <span>{{.Quantity}} {{.ProductLabel}}</span>
    </div>
    <div class="gamebites-tooltip-row">
      <span class="gamebites-tooltip-label">Exact:</span>
      <span class="gamebites-tooltip-value">{{.ExactQuantity}} units</span>
    </div>
    {{if .SourceHost}}<div class="gamebites-tooltip-source">
      <a href="{{.SourceURL}}" target="_blank" rel="noopener noreferrer">Price Source: {{.SourceHost}}</a>
    </div>{{end}}
  </div>
</div>`))

type badgeView struct {
	IconFile          string
	IconEmoji         string
	Quantity          string
	ProductLabel      string
	PriceText         string
	GamePriceUSD      string
	NeedsConversion   bool
	ProductRate       string
	ProductCurrency   string
	ProductPriceLocal string
	ExactQuantity     string
	SourceURL         string
	SourceHost        string
}

// RenderBadge synthesizes the badge block inserted before a purchase
// container.
func RenderBadge(result *domain.EquivalenceResult, product domain.ReferenceProduct, priceText string, table domain.RateTable) (string, error) {
	view := badgeView{
		Quantity:          result.QuantityDisplay,
		ProductLabel:      product.Label,
		PriceText:         strings.TrimSpace(priceText),
		GamePriceUSD:      fmt.Sprintf("%.2f", result.GamePriceUSD),
		NeedsConversion:   result.ProductCurrency != domain.CurrencyUSD,
		ProductRate:       fmt.Sprintf("%.2f", DisplayRate(result.ProductCurrency, table)),
		ProductCurrency:   result.ProductCurrency,
		ProductPriceLocal: fmt.Sprintf("%.2f", result.ProductPriceLocal),
		ExactQuantity:     fmt.Sprintf("%.2f", result.Quantity),
	}

	if strings.HasSuffix(product.Icon, ".svg") {
		view.IconFile = product.Icon
	} else if product.Icon != "" {
		view.IconEmoji = product.Icon
	} else {
		view.IconEmoji = "📦"
	}

	if product.SourceURL != "" {
		if u, err := url.Parse(product.SourceURL); err == nil && u.Host != "" {
			view.SourceURL = product.SourceURL
			view.SourceHost = u.Host
		}
	}

	var buf strings.Builder
	if err := badgeTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render badge: %w", err)
	}
	return buf.String(), nil
}
