// Package normalize converts raw extracted fields into canonical record
// values: whole-unit integer prices, de-escaped product links, and titles
// filtered against the known-noise blocklist.
package normalize

import "strconv"

// PriceToNumber strips every non-digit character from txt and parses the
// remainder as an integer. Returns nil when nothing parseable remains.
//
// Decimal and thousands separators are discarded alike, so "R$ 1.234,56"
// yields 123456 and "19.90" is indistinguishable from "1990". That fidelity
// loss matches the upstream price markup (the fraction element carries whole
// units only) and is kept on purpose.
func PriceToNumber(txt string) *int {
	digits := make([]byte, 0, len(txt))
	for i := 0; i < len(txt); i++ {
		if txt[i] >= '0' && txt[i] <= '9' {
			digits = append(digits, txt[i])
		}
	}
	if len(digits) == 0 {
		return nil
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		// Overflow on absurdly long digit runs.
		return nil
	}
	return &n
}
