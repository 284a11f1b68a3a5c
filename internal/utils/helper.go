package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const nbsp = "\u00a0"

var ruMonths = [...]string{
	"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
	"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
}

// ParseProductID parses a positive catalog id.
func ParseProductID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q: %w", s, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid product id %q: must be positive", s)
	}
	return id, nil
}

// FormatRUB renders an amount the way ru-RU formats currency: "1 234,00 ₽".
func FormatRUB(amount int64) string {
	fixed := decimal.NewFromInt(amount).Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(nbsp)
		}
		b.WriteRune(r)
	}

	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + b.String() + "," + frac + nbsp + "₽"
}

// FormatDate renders an RFC3339 timestamp as "21 окт. 2023".
// Unparseable input is returned unchanged.
func FormatDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return fmt.Sprintf("%d %s %d г.", t.Day(), ruMonths[t.Month()-1], t.Year())
}

func Truncate(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}
