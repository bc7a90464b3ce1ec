// Package format renders listing values for pages and the CLI.
package format

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/johnwards/colombomap/internal/domain"
)

// Missing stands in for an absent value.
const Missing = "—"

var printer = message.NewPrinter(language.English)

// LKR renders an amount as "LKR 45,000,000", or Missing when absent.
func LKR(n domain.Optional[int64]) string {
	v, ok := n.Get()
	if !ok {
		return Missing
	}
	return printer.Sprintf("LKR %d", v)
}

// PriceRange renders a launch's price as "from – to" when both ends are
// known, otherwise the starting price alone.
func PriceRange(p *domain.Property) string {
	if !p.PriceFromLkr.IsSet() {
		return Missing
	}
	if p.PriceToLkr.IsSet() {
		return LKR(p.PriceFromLkr) + " – " + LKR(p.PriceToLkr)
	}
	return LKR(p.PriceFromLkr)
}

// Placeholder returns s, or Missing when s is blank.
func Placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Missing
	}
	return s
}

// Int renders an optional integer.
func Int(n domain.Optional[int]) string {
	v, ok := n.Get()
	if !ok {
		return Missing
	}
	return strconv.Itoa(v)
}

// Ints joins integers with ", ".
func Ints(ns []int) string {
	if len(ns) == 0 {
		return Missing
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

// Bedrooms renders a bedroom set, with 0 shown as "Studio".
func Bedrooms(beds domain.Optional[[]int]) string {
	ns, ok := beds.Get()
	if !ok || len(ns) == 0 {
		return Missing
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		if n == 0 {
			parts[i] = "Studio"
			continue
		}
		parts[i] = strconv.Itoa(n) + " BR"
	}
	return strings.Join(parts, ", ")
}

// Count renders "1 condo" or "12 condos".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, singular)
	}
	return printer.Sprintf("%d %s", n, plural)
}
