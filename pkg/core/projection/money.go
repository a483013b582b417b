package projection

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberPattern     = regexp.MustCompile(`[\d.]+`)
	digitsPattern     = regexp.MustCompile(`[\d,]+`)
	lakhSuffixPattern = regexp.MustCompile(`\d+l`)
)

// ParseMoney converts currency-formatted text into a float. It tolerates
// thousand separators, rupee symbols and magnitude suffixes:
//
//	"1.1b"  -> 1.1e9
//	"2.3M"  -> 2.3e6   (unless the text mentions lakh)
//	"₹1.5L" -> 150000  ("lakh" or a trailing l after digits)
//	"85,000" -> 85000
//
// The second return value is false when no number could be extracted.
// Parsing never fails hard; callers degrade to a fallback constant.
func ParseMoney(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "rs", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.Trim(match, "."), 64)
	if err != nil {
		return 0, false
	}

	switch {
	case strings.Contains(s, "b"):
		return num * 1e9, true
	case strings.Contains(s, "m") && !strings.Contains(s, "lakh"):
		return num * 1e6, true
	case strings.Contains(s, "lakh") || lakhSuffixPattern.MatchString(s):
		return num * 100000, true
	default:
		return num, true
	}
}

// ParseCount extracts the leading run of digits from strings like
// "1,200+ users". Returns false when the text carries no digits.
func ParseCount(raw string) (int, bool) {
	s := strings.ReplaceAll(raw, "+", "")
	match := digitsPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePercent interprets a percentage-style value: "12%" becomes 0.12,
// numeric values pass through unchanged (they are assumed to already be
// fractional). Returns false for anything else.
func ParsePercent(value any) (float64, bool) {
	switch v := value.(type) {
	case string:
		if !strings.Contains(v, "%") {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, "%", "")), 64)
		if err != nil {
			return 0, false
		}
		return f / 100.0, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
