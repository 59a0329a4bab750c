// Package present formats values and prints row-sets as text tables.
package present

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter renders whole-currency amounts with thousands separators
type MoneyFormatter struct {
	symbol  string
	printer *message.Printer
}

// NewMoneyFormatter creates a formatter using symbol as the currency prefix
func NewMoneyFormatter(symbol string) *MoneyFormatter {
	return &MoneyFormatter{symbol: symbol, printer: message.NewPrinter(language.English)}
}

// Format rounds half away from zero to a whole amount: 1234.5 gives "$1,235"
// and -1234.5 gives "$-1,235". NaN and infinities give "".
func (m *MoneyFormatter) Format(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	whole := decimal.NewFromFloat(x).Round(0)
	return m.symbol + m.printer.Sprintf("%d", whole.IntPart())
}

var dollars = NewMoneyFormatter("$")

// Money formats x in dollars
func Money(x float64) string {
	return dollars.Format(x)
}

// Percent formats a ratio as a percentage: Percent(0.3, 2) is "30.00%"
func Percent(x float64, places int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return ""
	}
	return decimal.NewFromFloat(x).Mul(decimal.NewFromInt(100)).StringFixed(int32(places)) + "%"
}
