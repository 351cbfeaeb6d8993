// Package money formats whole-rupee amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const rupeeSign = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders amount with en-IN digit grouping, e.g. ₹12,999.
func FormatINR(amount int64) string {
	if amount < 0 {
		return "-" + rupeeSign + printer.Sprint(number.Decimal(-amount))
	}
	return rupeeSign + printer.Sprint(number.Decimal(amount))
}

// DiscountPercent is the markdown from original to price as a whole percent,
// rounded half up. It is 0 without an original price or when nothing is saved.
func DiscountPercent(price int64, original *int64) int {
	if original == nil || *original <= 0 || *original <= price {
		return 0
	}
	orig := decimal.NewFromInt(*original)
	pct := orig.Sub(decimal.NewFromInt(price)).Div(orig).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
