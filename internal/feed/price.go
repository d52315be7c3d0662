package feed

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRe matches the whole string: a plain decimal amount, whitespace, then
// exactly three letters of currency code. Anything looser (ranges, "free",
// embedded text) must not parse, so the anchors are deliberate.
var priceRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s+([A-Za-z]{3})\s*$`)

// ParsePrice extracts a numeric amount and uppercased 3-letter currency code
// from a loosely formatted price string. An unparsable string silently yields
// (nil, nil); that is a valid and common outcome, not an error.
func ParsePrice(raw string) (*float64, *string) {
	match := priceRe.FindStringSubmatch(raw)
	if match == nil {
		return nil, nil
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil, nil
	}

	currency := strings.ToUpper(match[2])
	return &amount, &currency
}
