package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in paise (1 rupee = 100 paise). Keeping amounts in
// minor units avoids floating-point drift in balance arithmetic.
type Money int64

// ParseMoney converts a decimal rupee string to paise with half-up rounding
// on the third decimal place. It accepts both dot (12.34) and comma (12,34)
// separators. Negative values are rejected; zero is valid (a cleared
// balance), positivity is enforced where payments are created.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		if parts[1] == "" {
			// bare or trailing separator: "." and "12."
			return 0, ErrInvalidAmount
		}
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	rupees, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var paise int64
	switch {
	case fracPart == "":
	case len(fracPart) == 1:
		paise = int64(fracPart[0]-'0') * 10
	default:
		paise = int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			paise++
		}
	}

	if rupees > (math.MaxInt64-paise)/100 {
		// rupees*100+paise would overflow int64
		return 0, ErrInvalidAmount
	}
	return Money(rupees*100 + paise), nil
}

// String renders the amount as a decimal rupee string with no trailing
// zeros: 250000 paise -> "2500", 15050 paise -> "150.5".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	rupees := v / 100
	paise := v % 100
	if paise == 0 {
		return sign + strconv.FormatInt(rupees, 10)
	}
	s := sign + strconv.FormatInt(rupees, 10) + "." + twoDigits(paise)
	return strings.TrimRight(s, "0")
}

func twoDigits(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
