package output

import (
	"encoding/json"
	"fmt"
	"github.com/hscells/incomegroup/classify"
	"github.com/hscells/incomegroup/lookup"
	"strconv"
	"strings"
)

// Money formats an amount in dollars with thousands separators and two decimal places.
func Money(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String() + frac
	}
	return "$" + b.String() + frac
}

// GroupSummary describes an income group for the reader.
func GroupSummary(s classify.Summary) string {
	return fmt.Sprintf("%s: average income %s across %d people", s.Group, Money(s.AverageIncome), s.Count)
}

// LookupSummary describes a nearest-age lookup for the reader.
func LookupSummary(target int, m lookup.Match) string {
	if m.Exact {
		return fmt.Sprintf("age %d: average income %s across %d people", target, Money(m.Income), m.Count)
	}
	return fmt.Sprintf("no one is aged %d; nearest age %d has average income %s across %d people", target, m.Age, Money(m.Income), m.Count)
}

// JsonSummaryFormatter outputs any summary value as indented JSON.
func JsonSummaryFormatter(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
