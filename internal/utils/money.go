package utils

import (
	"strconv"
	"strings"
)

// FormatRupee renders an integer rupee amount with Indian digit grouping
// (1,23,45,678) for tickets and invoices.
func FormatRupee(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "Rs. " + formatIndianGrouping(amount)
}

func formatIndianGrouping(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	var out strings.Builder
	head := str[:len(str)-3]
	for i, c := range head {
		if i != 0 && (len(head)-i)%2 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	out.WriteByte(',')
	out.WriteString(str[len(str)-3:])
	return out.String()
}
