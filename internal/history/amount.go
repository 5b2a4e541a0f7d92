package history

import "strconv"

// formatAmount prints a chip amount the way the feed spells it: no trailing
// zeros, no thousands separators. 2.50 renders as "2.5", 5.00 as "5".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
