package export

import (
	"fmt"
	"strings"

	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
	"github.com/strongslime/atelier/internal/pricing"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
)

// SummaryLines renders the order as plain text, one field per line:
// the same content as the PDF export, suitable for copy-to-clipboard.
func SummaryLines(cat catalogdomain.Catalog, st sessiondomain.SelectionState, bd pricing.Breakdown) []string {
	cur := cat.Currency(st.Currency)

	ctype, _ := cat.FindType(st.TypeID)
	sub, _ := ctype.FindSubType(st.SubTypeID)

	var tierName string
	var tierPrice float64
	if len(sub.Tiers) > 0 {
		tier := sub.Tiers[0]
		if st.TierIndex >= 0 && st.TierIndex < len(sub.Tiers) {
			tier = sub.Tiers[st.TierIndex]
		}
		tierName = tier.Name
		tierPrice = tier.Price
	}

	styleName := st.StyleID
	if style, ok := cat.ArtStyles[st.StyleID]; ok {
		styleName = style.Label
	}

	currencyName := st.Currency
	if cur.Name != "" {
		currencyName = cur.Name
	}

	var lines []string
	if strings.TrimSpace(st.Username) != "" {
		lines = append(lines, "Client: "+st.Username)
	}
	if strings.TrimSpace(st.Description) != "" {
		lines = append(lines, "Description: "+st.Description)
	}
	lines = append(lines,
		"Type: "+ctype.Name,
		"Subtype: "+sub.Name,
		fmt.Sprintf("Tier: %s (%s)", orDash(tierName), pricing.Format(tierPrice, cur)),
		"Style: "+styleName,
		"Currency: "+currencyName,
		"Add-ons: "+addonLine(ctype, st.Addons),
		fmt.Sprintf("Reference sheets uploaded: %d (%s)", len(st.Files), fileNames(st.Files)),
		"Reference discount applied: -"+pricing.Format(bd.RefDiscount, cur),
		"Estimated total: "+pricing.Format(bd.Total, cur),
	)
	return lines
}

// Summary joins the summary lines into the clipboard text block.
func Summary(cat catalogdomain.Catalog, st sessiondomain.SelectionState, bd pricing.Breakdown) string {
	return strings.Join(SummaryLines(cat, st, bd), "\n")
}

func addonLine(ctype catalogdomain.CommissionType, addons sessiondomain.AddonSelection) string {
	if len(addons) == 0 {
		return "None"
	}
	parts := make([]string, 0, len(addons))
	for _, entry := range addons {
		label := entry.ID
		if addon, ok := ctype.FindAddon(entry.ID); ok {
			label = addon.Label
		}
		if entry.Quantity > 1 {
			label = fmt.Sprintf("%s x%d", label, entry.Quantity)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "; ")
}

func fileNames(files []sessiondomain.FileRef) string {
	if len(files) == 0 {
		return "-"
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
