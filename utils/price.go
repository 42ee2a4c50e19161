package utils

import (
	"strconv"
	"strings"
)

// FormatPrice formats a decimal-as-string price (e.g. "24.99", "1250") as a
// display string like "$24.99" / "$1,250.00". Uses comma as thousands
// separator. Unparseable input is returned unchanged so a bad source value
// still renders as-is rather than dropping the line.
func FormatPrice(price string) string {
	s := strings.TrimSpace(price)
	if s == "" {
		return ""
	}
	raw := strings.TrimPrefix(s, "$")

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return s
	}

	neg := value < 0
	if neg {
		value = -value
	}

	whole := int64(value)
	cents := int64(value*100+0.5) - whole*100
	digits := strconv.FormatInt(whole, 10)

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 6)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(digits) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(digits[:rem])
	for i := rem; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}

	b.WriteByte('.')
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(cents, 10))
	return b.String()
}
