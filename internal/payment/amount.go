package payment

import (
	"math"
	"strconv"
	"strings"
)

// ToMinorUnits converts a major-unit amount (rupees) to minor units (paise),
// rounding half-up. The conversion works on the shortest decimal
// representation of the value rather than multiplying the float, so an input
// like 19.995 lands on 2000 instead of drifting to 1999 through binary
// representation error.
func ToMinorUnits(amount float64) (int64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, false
	}
	text := strconv.FormatFloat(amount, 'f', -1, 64)
	intPart := text
	fracPart := ""
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		intPart = text[:dot]
		fracPart = text[dot+1:]
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}
	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, false
	}
	cents, err := strconv.ParseInt(fracPart[:2], 10, 64)
	if err != nil {
		return 0, false
	}
	minor := whole*100 + cents
	if rest := fracPart[2:]; rest != "" && rest[0] >= '5' {
		minor++
	}
	if minor <= 0 {
		return 0, false
	}
	return minor, true
}
