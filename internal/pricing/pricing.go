package pricing

import (
	"fmt"
	"math"

	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
)

// Selection is the minimal input the engine needs. Callers map their
// session state onto it; the engine itself holds no state and produces
// identical output for identical input.
type Selection struct {
	TypeID    string
	SubTypeID string
	TierIndex int
	StyleID   string
	// Addons maps selected addon ids to quantities. A quantity below 1
	// is treated as 1; only the reserved quantity addon uses values
	// above 1.
	Addons    map[string]int
	FileCount int
}

// Breakdown decomposes the estimate. All amounts are base currency;
// display conversion never feeds back into these numbers.
type Breakdown struct {
	Base        float64 `json:"base"`
	StyleAdd    float64 `json:"style_add"`
	AddonsSum   float64 `json:"addons_sum"`
	RefDiscount float64 `json:"ref_discount"`
	Total       float64 `json:"total"`
}

// Compute derives the price breakdown for a selection. An unresolvable
// type, subtype, or tier yields a zero breakdown rather than an error:
// a partial selection simply prices to nothing.
func Compute(cat catalogdomain.Catalog, sel Selection) Breakdown {
	ctype, ok := cat.FindType(sel.TypeID)
	if !ok {
		return Breakdown{}
	}
	sub, ok := ctype.FindSubType(sel.SubTypeID)
	if !ok {
		return Breakdown{}
	}
	if len(sub.Tiers) == 0 {
		return Breakdown{}
	}

	tier := sub.Tiers[0]
	if sel.TierIndex >= 0 && sel.TierIndex < len(sub.Tiers) {
		tier = sub.Tiers[sel.TierIndex]
	}
	base := tier.Price

	var styleAdd float64
	if style, ok := cat.ArtStyles[sel.StyleID]; ok && style.Kind == catalogdomain.StyleKindPercent {
		styleAdd = base * (style.Value / 100)
	}

	var addonsSum float64
	for _, addon := range ctype.Addons {
		qty, selected := sel.Addons[addon.ID]
		if !selected {
			continue
		}
		switch addon.Kind {
		case catalogdomain.AddonKindPercent:
			addonsSum += base * (addon.Value / 100)
		default:
			if addon.ID == catalogdomain.AddonItemProp {
				if qty < 1 {
					qty = 1
				}
				addonsSum += addon.Value * float64(qty)
			} else {
				addonsSum += addon.Value
			}
		}
	}

	// The first reference sheet is expected; each extra one earns a
	// capped discount.
	extra := math.Max(0, float64(sel.FileCount-1))
	refDiscount := math.Min(cat.Discount.PerFileAmount*extra, cat.Discount.MaxDiscount)

	total := math.Max(0, base+styleAdd+addonsSum-refDiscount)
	return Breakdown{
		Base:        base,
		StyleAdd:    styleAdd,
		AddonsSum:   addonsSum,
		RefDiscount: refDiscount,
		Total:       total,
	}
}

// Convert scales a base-currency amount into the display currency.
func Convert(amount float64, cur catalogdomain.Currency) float64 {
	rate := cur.Rate
	if rate == 0 {
		rate = 1
	}
	return amount * rate
}

// Format renders a base-currency amount for display: converted,
// symbol-prefixed, two decimal places.
func Format(amount float64, cur catalogdomain.Currency) string {
	symbol := cur.Symbol
	if symbol == "" {
		symbol = "$"
	}
	return fmt.Sprintf("%s%.2f", symbol, Convert(amount, cur))
}

// DisplayBreakdown is a breakdown converted and formatted for one
// display currency. Produced at the edge only; the stored breakdown is
// never mutated by currency changes.
type DisplayBreakdown struct {
	Base        string `json:"base"`
	StyleAdd    string `json:"style_add"`
	AddonsSum   string `json:"addons_sum"`
	RefDiscount string `json:"ref_discount"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}

func FormatBreakdown(b Breakdown, code string, cur catalogdomain.Currency) DisplayBreakdown {
	return DisplayBreakdown{
		Base:        Format(b.Base, cur),
		StyleAdd:    Format(b.StyleAdd, cur),
		AddonsSum:   Format(b.AddonsSum, cur),
		RefDiscount: "-" + Format(b.RefDiscount, cur),
		Total:       Format(b.Total, cur),
		Currency:    code,
	}
}
