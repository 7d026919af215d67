package engine

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// A number token in pt-BR chat text: "50", "25,90", "1.234,56", "12.50".
const numberPattern = `\d{1,3}(?:\.\d{3})+(?:,\d{1,2})?|\d+(?:[.,]\d{1,2})?`

// valueFamily is one rung of the extraction cascade. Families are tried in
// strict priority order; the first family with at least one parseable match
// wins and later families never run. Families with a boundary set match the
// bare number and check the neighboring characters by index, so adjacent
// candidates are all collected instead of the boundary swallowing the next
// one.
type valueFamily struct {
	name     string
	re       *regexp.Regexp
	boundary string
}

var valueFamilies = []valueFamily{
	// Explicit currency prefix: "r$ 50", "r$50,90".
	{name: "currency", re: regexp.MustCompile(`r\$\s*(` + numberPattern + `)`)},
	// Amount followed by the currency word: "50 reais", "25,90 real".
	{name: "currency-word", re: regexp.MustCompile(`(` + numberPattern + `)\s*(?:reais|real)\b`)},
	// Amount preceded by a value-indicating verb or noun.
	{name: "verb", re: regexp.MustCompile(`(?:paguei|gastei|comprei|custou|custa|valor(?:\s+de)?|total(?:\s+de)?|foi)\s+(?:r\$\s*)?(` + numberPattern + `)`)},
	// Bare decimal with exactly two fraction digits; an isolated "25,90" is
	// almost certainly money, an isolated "25" may be a quantity or a day.
	{name: "bare-decimal", re: regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d{2}|\d+\.\d{2}`), boundary: ",."},
	// Any bare integer, last resort. The boundary rejects date and range
	// fragments like "10/05" or "2024-01".
	{name: "bare-integer", re: regexp.MustCompile(`\d+`), boundary: ",./-"},
}

// candidates returns every number token the family recognizes in text.
func (f valueFamily) candidates(text string) []string {
	if f.boundary == "" {
		var out []string
		for _, m := range f.re.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1])
		}
		return out
	}
	var out []string
	for _, idx := range f.re.FindAllStringIndex(text, -1) {
		if f.isolated(text, idx[0], idx[1]) {
			out = append(out, text[idx[0]:idx[1]])
		}
	}
	return out
}

// isolated reports whether the match at [lo,hi) touches neither a digit nor
// one of the family's boundary characters.
func (f valueFamily) isolated(text string, lo, hi int) bool {
	if lo > 0 && f.joins(text[lo-1]) {
		return false
	}
	if hi < len(text) && f.joins(text[hi]) {
		return false
	}
	return true
}

func (f valueFamily) joins(c byte) bool {
	return c >= '0' && c <= '9' || strings.IndexByte(f.boundary, c) >= 0
}

// ExtractAmount finds the best-guess monetary amount in normalized text.
// Within a family every match is parsed and the maximum is kept: receipt
// style input tends to carry subtotals, and the total is the largest
// number. Returns false only when no family yields a parseable positive
// amount.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	for _, fam := range valueFamilies {
		best := decimal.Zero
		found := false
		for _, c := range fam.candidates(text) {
			amt, ok := parseAmount(c)
			if !ok {
				continue
			}
			if !found || amt.GreaterThan(best) {
				best = amt
				found = true
			}
		}
		if found {
			return best, true
		}
	}
	return decimal.Zero, false
}

// dotGroupedRe matches a number whose dots can only be thousands
// separators: every dot group is exactly 3 digits, as in "1.234" or
// "1.234.567". A dot decimal like "12.50" does not match.
var dotGroupedRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)

// parseAmount converts a pt-BR formatted number to a positive two-decimal
// amount. "1.234,56" and "1234.56" both parse to 1234.56, and "1.234"
// parses to 1234.
func parseAmount(s string) (decimal.Decimal, bool) {
	switch {
	case strings.Contains(s, ","):
		// Comma is the decimal separator; dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case dotGroupedRe.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	amt, err := decimal.NewFromString(s)
	if err != nil || !amt.IsPositive() {
		return decimal.Zero, false
	}
	return amt.Round(2), true
}
