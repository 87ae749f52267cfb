// Package money holds the monetary arithmetic and display formatting rules.
// All arithmetic goes through shopspring/decimal so repeated additions do not
// drift the way float64 sums do; floats appear only at the JSON boundary.
package money

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Round2 rounds half-up to two decimal places (the currency boundary).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal computes unit price x quantity rounded at the currency boundary.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(qty))))
}

// DiscountAmount computes the discount fraction of subtotal for a percentage
// in [0,100], rounded at the currency boundary.
func DiscountAmount(subtotal decimal.Decimal, percent float64) decimal.Decimal {
	p := decimal.NewFromFloat(percent).Div(decimal.NewFromInt(100))
	return Round2(subtotal.Mul(p))
}

// Formatter renders amounts with locale-aware grouping. The currency is a
// configuration point: INR/en-IN groups lakh/crore style (1,23,456.78),
// USD/en-US groups in thousands.
type Formatter struct {
	Symbol string
	tag    language.Tag
}

func NewFormatter(symbol, locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{Symbol: symbol, tag: tag}
}

func (f Formatter) Format(d decimal.Decimal) string {
	p := message.NewPrinter(f.tag)
	v, _ := Round2(d).Float64()
	return f.Symbol + p.Sprintf("%v", number.Decimal(v, number.Scale(2)))
}

// Date layouts selectable via template settings.
const (
	DateFormatUS  = "MM/DD/YYYY"
	DateFormatEU  = "DD/MM/YYYY"
	DateFormatISO = "YYYY-MM-DD"
)

var dateLayouts = map[string]string{
	DateFormatUS:  "01/02/2006",
	DateFormatEU:  "02/01/2006",
	DateFormatISO: "2006-01-02",
}

// FormatDate renders t using one of the supported template-settings formats,
// falling back to MM/DD/YYYY for unknown values.
func FormatDate(t time.Time, format string) string {
	layout, ok := dateLayouts[format]
	if !ok {
		layout = dateLayouts[DateFormatUS]
	}
	return t.Format(layout)
}
