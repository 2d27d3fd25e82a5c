package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"
)

// OrderData is the fully resolved commission summary: labels already
// looked up, amounts already formatted in the display currency. The
// renderer does no computation of its own.
type OrderData struct {
	Title       string
	ClientName  string
	Description string

	TypeName    string
	SubTypeName string
	TierName    string
	TierPrice   string
	StyleName   string
	Currency    string

	Addons []OrderAddon
	Files  []OrderFile

	Base        string
	StyleAdd    string
	AddonsSum   string
	RefDiscount string
	Total       string

	GeneratedAt string
}

type OrderAddon struct {
	Label    string
	Quantity int
	Price    string
}

// OrderFile carries one attached reference. Content is present only
// for files whose bytes are still held in memory; image content is
// embedded best-effort.
type OrderFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type PDFProvider struct {
	log *zap.Logger
}

func (p *PDFProvider) GenerateOrderSummary(ctx context.Context, data OrderData) (io.Reader, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := data.Title
	if title == "" {
		title = "Commission Summary"
	}
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, "(send this along with your payment)", props.Text{
			Size:  11,
			Style: fontstyle.Italic,
		}),
	)

	if data.ClientName != "" {
		m.AddRow(8,
			text.NewCol(12, "Client: "+data.ClientName, props.Text{
				Size:  12,
				Style: fontstyle.Bold,
			}),
		)
	}
	if data.Description != "" {
		m.AddRow(6, text.NewCol(12, "Commission description", props.Text{Size: 10, Style: fontstyle.Bold}))
		m.AddRow(14, text.NewCol(12, data.Description, props.Text{Size: 10}))
	}

	m.AddRow(8, text.NewCol(12, "Commission details", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	m.AddRow(24,
		col.New(12).Add(
			text.New("Type: "+orDash(data.TypeName), props.Text{Size: 10, Top: 0}),
			text.New("Subtype: "+orDash(data.SubTypeName), props.Text{Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Tier: %s - %s", orDash(data.TierName), data.TierPrice), props.Text{Size: 10, Top: 10}),
			text.New("Art style: "+orDash(data.StyleName), props.Text{Size: 10, Top: 15}),
			text.New("Currency: "+data.Currency, props.Text{Size: 10, Top: 20}),
		),
	)

	m.AddRow(8, text.NewCol(12, "Add-ons", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	if len(data.Addons) == 0 {
		m.AddRow(6, text.NewCol(12, "None selected", props.Text{Size: 10}))
	}
	for _, addon := range data.Addons {
		label := addon.Label
		if addon.Quantity > 1 {
			label = fmt.Sprintf("%s x%d", addon.Label, addon.Quantity)
		}
		m.AddRow(6,
			text.NewCol(9, label, props.Text{Size: 10}),
			text.NewCol(3, addon.Price, props.Text{Size: 10, Align: align.Right}),
		)
	}

	m.AddRow(8, text.NewCol(12, "Reference sheets", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	if len(data.Files) == 0 {
		m.AddRow(6, text.NewCol(12, "No reference sheets uploaded", props.Text{Size: 10}))
	}
	for _, file := range data.Files {
		m.AddRow(6, text.NewCol(12, file.Name, props.Text{Size: 10}))
		ext, ok := imageExtension(file.ContentType, file.Name)
		if !ok || len(file.Content) == 0 {
			if ok {
				p.log.Warn("reference content unavailable, skipping embed", zap.String("file", file.Name))
			}
			continue
		}
		m.AddRow(45,
			image.NewFromBytesCol(4, file.Content, ext, props.Rect{
				Center:  false,
				Percent: 90,
			}),
			col.New(8),
		)
	}

	m.AddRow(8, text.NewCol(12, "Pricing breakdown", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}))
	m.AddRow(6,
		text.NewCol(9, "Base price", props.Text{Size: 10}),
		text.NewCol(3, data.Base, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(9, "Style add-on", props.Text{Size: 10}),
		text.NewCol(3, "+"+data.StyleAdd, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(9, "Add-ons", props.Text{Size: 10}),
		text.NewCol(3, "+"+data.AddonsSum, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(9, "Reference discount", props.Text{Size: 10}),
		text.NewCol(3, data.RefDiscount, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(9, "Total estimated price", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
		text.NewCol(3, data.Total, props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Top: 2}),
	)

	m.AddRow(10,
		text.NewCol(12, "Generated on "+data.GeneratedAt, props.Text{
			Size:  9,
			Style: fontstyle.Italic,
			Top:   4,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}

// imageExtension maps a content type (or filename suffix) onto a
// maroto image extension. Unsupported types are skipped, not embedded.
func imageExtension(contentType, name string) (extension.Type, bool) {
	switch {
	case strings.Contains(contentType, "png") || strings.HasSuffix(strings.ToLower(name), ".png"):
		return extension.Png, true
	case strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg") ||
		strings.HasSuffix(strings.ToLower(name), ".jpg") || strings.HasSuffix(strings.ToLower(name), ".jpeg"):
		return extension.Jpg, true
	default:
		return "", false
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
