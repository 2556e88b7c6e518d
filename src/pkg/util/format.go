package util

import (
	"strconv"
	"strings"
)

/*
GroupThousands groups digits in a base-10 string using the provided separator.

Example:

	GroupThousands("1234567", ",") -> "1,234,567"
*/
func GroupThousands(raw string, sep string) string {
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}
	if len(raw) <= 3 {
		return sign + raw
	}

	var builder strings.Builder
	builder.WriteString(sign)

	firstGroupLen := len(raw) % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}

	builder.WriteString(raw[:firstGroupLen])

	for index := firstGroupLen; index < len(raw); index += 3 {
		builder.WriteString(sep)
		builder.WriteString(raw[index : index+3])
	}

	return builder.String()
}

// FormatIntHuman formats a count with comma separators for log lines.
func FormatIntHuman(value int) string {
	return GroupThousands(strconv.Itoa(value), ",")
}
