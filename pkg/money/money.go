package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Round rounds a monetary value to two decimal places, half away from zero.
// Going through decimal sidesteps float representation drift (2.675 rounds
// up to 2.68, not down).
func Round(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// Formatter renders rounded amounts as localized currency strings. A fixed
// formatter produces identical output for identical input.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 currency code and a BCP 47
// locale tag.
func NewFormatter(currencyCode, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", currencyCode, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

// Format renders the rounded value with the narrow currency symbol,
// e.g. Format(12.5) -> "$12.50" for USD/en-US.
func (f *Formatter) Format(value float64) string {
	return f.printer.Sprintf("%v", currency.NarrowSymbol(f.unit.Amount(Round(value))))
}

var defaultFormatter = mustFormatter("USD", "en-US")

func mustFormatter(currencyCode, locale string) *Formatter {
	f, err := NewFormatter(currencyCode, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders the value with the storefront default (USD, en-US).
func Format(value float64) string {
	return defaultFormatter.Format(value)
}
