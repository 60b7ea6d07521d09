package report

import (
	"fmt"
	"strings"
)

// FormatINR renders an amount with Indian digit grouping (12,34,567), the
// single fixed display format the app uses. Fractions are dropped; the
// ledger only ever holds whole amounts.
func FormatINR(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	digits := fmt.Sprintf("%.0f", v)
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]

		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + tail
	}

	if neg {
		return "-" + digits
	}
	return digits
}
