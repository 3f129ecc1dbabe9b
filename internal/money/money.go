// Package money holds the shared amount formatting and parsing helpers.
//
// Amounts are plain float64 dollars throughout the application. That is a
// known precision limitation: intermediate engine math never rounds, only
// the display layer does, so errors stay below a cent for realistic inputs.
package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount in the fixed USD display style: two fraction
// digits and thousands separators, e.g. 1234.5 -> "$1,234.50".
func Format(amount float64) string {
	rounded := Round2(amount)

	if math.Signbit(rounded) && rounded != 0 {
		return printer.Sprintf("-$%.2f", -rounded)
	}

	return printer.Sprintf("$%.2f", rounded)
}

// Round2 rounds to two decimal places for display. Engine code must not
// call this on intermediate results.
func Round2(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

// ParseAmount parses a user- or file-supplied amount string into dollars.
// Both "1,234.56" and the European "1.234,56" style are accepted.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")

	if lastComma := strings.LastIndexByte(clean, ','); lastComma > strings.LastIndexByte(clean, '.') {
		// European style: dots group thousands, the comma is the decimal mark.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	f, _ := d.Float64()

	return f, nil
}
