package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// RequestNumberSequence names the counter row backing request numbers.
const RequestNumberSequence = "request_number"

func requestNumberPrefix(prefix string) string {
	return prefix + "-RFQ-"
}

// FormatRequestNumber renders PREFIX-RFQ-NNNN. Numbers past 9999 simply grow wider.
func FormatRequestNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s%04d", requestNumberPrefix(prefix), n)
}

// ParseRequestNumber extracts the numeric suffix of a request number.
func ParseRequestNumber(prefix, number string) (int64, bool) {
	rest, ok := strings.CutPrefix(number, requestNumberPrefix(prefix))
	if !ok || rest == "" {
		return 0, false
	}

	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextRequestNumber returns the number following last. An empty or foreign
// number restarts the sequence at 1.
func NextRequestNumber(prefix, last string) string {
	n, _ := ParseRequestNumber(prefix, last)
	return FormatRequestNumber(prefix, n+1)
}
