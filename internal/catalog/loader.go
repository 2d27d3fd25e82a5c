package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/strongslime/atelier/internal/catalog/domain"
)

// Load reads the commission data document. Missing optional fields
// receive the built-in defaults; commissionTypes and currencies are
// required and their absence is an error so the caller can fall back
// to the default catalog wholesale.
func Load(catalogPath string) (domain.Catalog, error) {
	raw, err := os.ReadFile(catalogPath)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog config: %w", err)
	}

	// Shadow the discount field so an absent section is distinguishable
	// from an explicit zero policy.
	var doc struct {
		domain.Catalog
		Discount *domain.DiscountPolicy `json:"discountSettings"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog config: %w", err)
	}

	cat := doc.Catalog
	defaults := domain.Default()

	if doc.Discount != nil {
		cat.Discount = *doc.Discount
	} else {
		cat.Discount = defaults.Discount
	}
	if cat.Labels == nil {
		cat.Labels = defaults.Labels
	}
	if cat.TermsOfService == nil {
		cat.TermsOfService = defaults.TermsOfService
	}
	if cat.ArtStyles == nil {
		cat.ArtStyles = defaults.ArtStyles
	}
	if _, ok := cat.ArtStyles[domain.DefaultStyleID]; !ok {
		// The no-fee default style must always exist.
		cat.ArtStyles[domain.DefaultStyleID] = domain.ArtStyle{Label: "Basic", Kind: domain.StyleKindNone}
	}
	if cat.DefaultCurrency == "" {
		if _, ok := cat.Currencies["USD"]; ok {
			cat.DefaultCurrency = "USD"
		}
	}

	if err := cat.Validate(); err != nil {
		return domain.Catalog{}, err
	}
	return cat, nil
}

// LoadTheme reads the optional theme document. The engine never
// interprets it; it is passed through to the renderer as-is.
func LoadTheme(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme config: %w", err)
	}
	var theme map[string]any
	if err := json.Unmarshal(raw, &theme); err != nil {
		return nil, fmt.Errorf("parse theme config: %w", err)
	}
	return theme, nil
}
