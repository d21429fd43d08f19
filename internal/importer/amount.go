package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a money string into signed cents. Both decimal
// conventions are accepted: "1,234.56" and "1.234,56" -> 123456,
// "-588,74" -> -58874.
func parseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "€")
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, " ", "")

	lastComma := strings.LastIndex(clean, ",")
	lastDot := strings.LastIndex(clean, ".")

	if lastComma > lastDot {
		// European convention: dot groups thousands, comma is decimal.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
