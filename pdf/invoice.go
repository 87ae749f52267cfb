// Package pdf renders committed invoices as paginated PDF documents.
// Layout is driven entirely by the merged template settings: callers decide
// nothing about appearance beyond handing over branding and profile data.
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/stockbill/internal/models"
	"github.com/diewo77/stockbill/internal/money"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// InvoiceData bundles everything the renderer needs. Branding and Profile
// may be nil; the settings must already be the merged set.
type InvoiceData struct {
	Invoice   *models.Invoice
	Branding  *models.UserBranding
	Profile   *models.CompanyProfile
	Settings  models.TemplateSettings
	Formatter money.Formatter
	IsPreview bool
}

// Number renders the display invoice number: configured prefix plus the
// trailing portion of the invoice identity.
func Number(prefix, publicID string) string {
	tail := publicID
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	return prefix + tail
}

// Filename suggests a download name derived from the invoice number.
func Filename(prefix, publicID string) string {
	return Number(prefix, publicID) + ".pdf"
}

func fontSizes(settings models.TemplateSettings) (body, heading float64) {
	switch settings.FontSize {
	case "small":
		return 8, 14
	case "large":
		return 11, 18
	default:
		return 9, 16
	}
}

func rowHeight(settings models.TemplateSettings) float64 {
	switch settings.LineSpacing {
	case "compact":
		return 5
	case "relaxed":
		return 8
	default:
		return 6
	}
}

// parseHexColor converts "#RRGGBB" into a maroto color, falling back to a
// neutral dark gray for malformed values.
func parseHexColor(hex string) *props.Color {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return &props.Color{Red: 55, Green: 65, Blue: 81}
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return &props.Color{Red: 55, Green: 65, Blue: 81}
	}
	return &props.Color{Red: int(r), Green: int(g), Blue: int(b)}
}

// tint lightens a color toward white for alternating row backgrounds.
func tint(c *props.Color) *props.Color {
	lighten := func(v int) int { return v + (255-v)*85/100 }
	return &props.Color{Red: lighten(c.Red), Green: lighten(c.Green), Blue: lighten(c.Blue)}
}

// Invoice renders the document. Pagination is handled by the engine: a line
// item that would pass the bottom margin starts a new page.
func Invoice(data InvoiceData) ([]byte, error) {
	if data.Invoice == nil {
		return nil, fmt.Errorf("nil invoice")
	}
	settings := data.Settings
	bodySize, headingSize := fontSizes(settings)
	itemRowHeight := rowHeight(settings)

	primary := parseHexColor("#3B82F6")
	secondary := parseHexColor("#EF4444")
	if data.Branding != nil {
		primary = parseHexColor(data.Branding.PrimaryColor)
		secondary = parseHexColor(data.Branding.SecondaryColor)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	white := &props.Color{Red: 255, Green: 255, Blue: 255}

	// Title banner
	titleProps := props.Text{Size: headingSize, Style: fontstyle.Bold, Align: align.Left}
	numberProps := props.Text{Size: bodySize + 1, Align: align.Right, Top: 3}
	if settings.HeaderBackgroundEnabled {
		titleProps.Color = white
		numberProps.Color = white
	}
	titleRow := row.New(12).Add(
		text.NewCol(8, "INVOICE", titleProps),
		text.NewCol(4, Number(settings.InvoiceNumberPrefix, data.Invoice.PublicID), numberProps),
	)
	if settings.HeaderBackgroundEnabled {
		titleRow = titleRow.WithStyle(&props.Cell{BackgroundColor: primary})
	}
	m.AddRows(titleRow)
	m.AddRows(row.New(4))

	// Company block, gated field by field
	if data.Profile != nil {
		companyLines := []string{data.Profile.CompanyName}
		if settings.ShowCompanyAddress && data.Profile.Address != "" {
			companyLines = append(companyLines, data.Profile.Address)
		}
		if settings.ShowCompanyPhone && data.Profile.Phone != "" {
			companyLines = append(companyLines, "Phone: "+data.Profile.Phone)
		}
		if settings.ShowCompanyEmail && data.Profile.Email != "" {
			companyLines = append(companyLines, "Email: "+data.Profile.Email)
		}
		if settings.ShowWebsite && data.Profile.Website != "" {
			companyLines = append(companyLines, data.Profile.Website)
		}
		if settings.ShowTaxID && data.Profile.TaxID != "" {
			companyLines = append(companyLines, "Tax ID: "+data.Profile.TaxID)
		}
		for i, l := range companyLines {
			style := props.Text{Size: bodySize, Align: align.Left}
			if i == 0 {
				style.Style = fontstyle.Bold
			}
			m.AddRows(row.New(5).Add(text.NewCol(12, l, style)))
		}
		m.AddRows(row.New(3))
	}

	// Bill-to and date
	m.AddRows(
		row.New(6).Add(
			text.NewCol(6, "BILL TO", props.Text{Size: bodySize, Style: fontstyle.Bold, Color: primary}),
			text.NewCol(6, "Date: "+money.FormatDate(data.Invoice.CreatedAt, settings.DateFormat),
				props.Text{Size: bodySize, Align: align.Right}),
		),
		row.New(5).Add(text.NewCol(12, data.Invoice.CustomerName, props.Text{Size: bodySize})),
		row.New(5).Add(text.NewCol(12, "Phone: "+data.Invoice.CustomerNumber, props.Text{Size: bodySize})),
		row.New(4),
	)

	// Items table
	headerProps := props.Text{Size: bodySize, Style: fontstyle.Bold, Color: white}
	m.AddRows(row.New(7).Add(
		text.NewCol(6, "ITEM DESCRIPTION", headerProps),
		text.NewCol(2, "QTY", props.Text{Size: bodySize, Style: fontstyle.Bold, Align: align.Center, Color: white}),
		text.NewCol(2, "PRICE", props.Text{Size: bodySize, Style: fontstyle.Bold, Align: align.Right, Color: white}),
		text.NewCol(2, "TOTAL", props.Text{Size: bodySize, Style: fontstyle.Bold, Align: align.Right, Color: white}),
	).WithStyle(&props.Cell{BackgroundColor: primary}))

	alt := tint(secondary)
	for i, item := range data.Invoice.Items {
		r := row.New(itemRowHeight).Add(
			text.NewCol(6, item.Name, props.Text{Size: bodySize}),
			text.NewCol(2, strconv.Itoa(item.Quantity), props.Text{Size: bodySize, Align: align.Center}),
			text.NewCol(2, data.Formatter.Format(item.Price), props.Text{Size: bodySize, Align: align.Right}),
			text.NewCol(2, data.Formatter.Format(item.Total), props.Text{Size: bodySize, Align: align.Right}),
		)
		if settings.AlternatingRowColors && i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: alt})
		}
		m.AddRows(r)
	}

	m.AddRows(row.New(2), row.New(1).Add(line.NewCol(12)), row.New(2))

	// Totals
	m.AddRows(totalRow("Subtotal:", data.Formatter.Format(data.Invoice.Subtotal), bodySize, false, nil))
	if data.Invoice.Discount > 0 {
		discount := data.Invoice.Subtotal.Sub(data.Invoice.Total)
		label := fmt.Sprintf("Discount (%s%%):", strconv.FormatFloat(data.Invoice.Discount, 'f', -1, 64))
		m.AddRows(totalRow(label, "-"+data.Formatter.Format(discount), bodySize, false, secondary))
	}
	m.AddRows(totalRow("TOTAL:", data.Formatter.Format(data.Invoice.Total), bodySize+2, true, primary))

	if settings.ShowFooter && settings.FooterText != "" {
		m.AddRows(row.New(6), row.New(5).Add(
			text.NewCol(12, settings.FooterText, props.Text{Size: bodySize, Align: align.Center, Style: fontstyle.Italic})))
	}
	if data.IsPreview {
		m.AddRows(row.New(5).Add(text.NewCol(12, "PREVIEW - generated "+time.Now().UTC().Format(time.RFC3339),
			props.Text{Size: bodySize - 1, Align: align.Center})))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func totalRow(label, value string, size float64, bold bool, color *props.Color) core.Row {
	labelProps := props.Text{Size: size, Align: align.Right}
	valueProps := props.Text{Size: size, Align: align.Right}
	if bold {
		labelProps.Style = fontstyle.Bold
		valueProps.Style = fontstyle.Bold
	}
	if color != nil {
		valueProps.Color = color
	}
	return row.New(7).Add(
		col.New(6),
		text.NewCol(3, label, labelProps),
		text.NewCol(3, value, valueProps),
	)
}
