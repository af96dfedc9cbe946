package util

import (
	"math"
	"strconv"
)

// Round2 rounds to 2 decimal places. Used for every price-like and
// percentage field so repeated runs on identical input are byte-identical.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place (spread cents).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Comma formats an integer with thousands separators: 1500000 -> "1,500,000".
func Comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
