package domain

import "errors"

// Addon pricing kinds. Flat addons charge Value base-currency units,
// percent addons charge Value percent of the selected tier price.
const (
	AddonKindFlat    = "flat"
	AddonKindPercent = "percent"
)

// Art style kinds. A "none" style carries no surcharge.
const (
	StyleKindNone    = "none"
	StyleKindPercent = "percent"
)

// AddonItemProp is the reserved addon id that carries a quantity:
// its flat value is multiplied by the selected count.
const AddonItemProp = "itemProp"

// DefaultStyleID is the no-fee style that must always exist and is
// selected by default.
const DefaultStyleID = "style_basic"

type Tier struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type SubType struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tiers []Tier `json:"tiers"`
}

type Addon struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Kind  string  `json:"type"`
	Value float64 `json:"value"`
}

type CommissionType struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceRange string    `json:"priceRange"`
	ComingSoon bool      `json:"comingSoon"`
	SubTypes   []SubType `json:"subTypes"`
	Addons     []Addon   `json:"addons"`
}

type ArtStyle struct {
	Label string  `json:"label"`
	Kind  string  `json:"type"`
	Value float64 `json:"value"`
}

// Currency rates are multipliers from the base currency (USD = 1.0) to
// the display currency. Stored prices are always base currency.
type Currency struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
}

type DiscountPolicy struct {
	PerFileAmount float64 `json:"referenceDiscountPerFile"`
	MaxDiscount   float64 `json:"maxReferenceDiscount"`
}

type TermsOfService struct {
	Title         string   `json:"title"`
	Content       []string `json:"content"`
	AgreementText string   `json:"agreementText"`
}

type Catalog struct {
	CommissionTypes []CommissionType    `json:"commissionTypes"`
	Currencies      map[string]Currency `json:"currencies"`
	DefaultCurrency string              `json:"defaultCurrency"`
	ArtStyles       map[string]ArtStyle `json:"artStyles"`
	Discount        DiscountPolicy      `json:"discountSettings"`
	Labels          map[string]string   `json:"labels"`
	TermsOfService  *TermsOfService     `json:"termsOfService,omitempty"`

	// Theme and thumbnails are renderer concerns: parsed, validated for
	// JSON well-formedness only, and passed through untouched.
	Thumbnails map[string]any `json:"thumbnails,omitempty"`
	Theme      map[string]any `json:"theme,omitempty"`
}

var (
	ErrMissingTypes      = errors.New("catalog_missing_commission_types")
	ErrMissingCurrencies = errors.New("catalog_missing_currencies")
	ErrSubTypeNoTiers    = errors.New("catalog_subtype_without_tiers")
	ErrUnknownCurrency   = errors.New("catalog_unknown_default_currency")
	ErrNegativeDiscount  = errors.New("catalog_negative_discount")
)

// FindType returns the commission type with the given id. Absence is
// not an error, callers render nothing for a miss.
func (c Catalog) FindType(id string) (CommissionType, bool) {
	for _, t := range c.CommissionTypes {
		if t.ID == id {
			return t, true
		}
	}
	return CommissionType{}, false
}

func (t CommissionType) FindSubType(id string) (SubType, bool) {
	for _, s := range t.SubTypes {
		if s.ID == id {
			return s, true
		}
	}
	return SubType{}, false
}

func (t CommissionType) FindAddon(id string) (Addon, bool) {
	for _, a := range t.Addons {
		if a.ID == id {
			return a, true
		}
	}
	return Addon{}, false
}

// Currency resolves a display currency, falling back to the catalog
// default and then to a bare USD entry so formatting never fails.
func (c Catalog) Currency(code string) Currency {
	if cur, ok := c.Currencies[code]; ok {
		return cur
	}
	if cur, ok := c.Currencies[c.DefaultCurrency]; ok {
		return cur
	}
	return Currency{Symbol: "$", Name: "US Dollar", Rate: 1}
}

// SelectableTypes excludes coming-soon entries, which are visible but
// inert in the wizard.
func (c Catalog) SelectableTypes() []CommissionType {
	out := make([]CommissionType, 0, len(c.CommissionTypes))
	for _, t := range c.CommissionTypes {
		if !t.ComingSoon {
			out = append(out, t)
		}
	}
	return out
}

// Validate enforces the structural invariants required before a loaded
// catalog may replace the built-in default.
func (c Catalog) Validate() error {
	if len(c.CommissionTypes) == 0 {
		return ErrMissingTypes
	}
	if len(c.Currencies) == 0 {
		return ErrMissingCurrencies
	}
	for _, t := range c.CommissionTypes {
		for _, s := range t.SubTypes {
			if len(s.Tiers) == 0 {
				return ErrSubTypeNoTiers
			}
		}
	}
	if c.DefaultCurrency != "" {
		if _, ok := c.Currencies[c.DefaultCurrency]; !ok {
			return ErrUnknownCurrency
		}
	}
	if c.Discount.PerFileAmount < 0 || c.Discount.MaxDiscount < 0 {
		return ErrNegativeDiscount
	}
	return nil
}
