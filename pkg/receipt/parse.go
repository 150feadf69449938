package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fintrack/pkg/money"
)

var (
	// candidateRE captures currency-ish numbers together with a little
	// leading context (currency marker or a "total" label) for scoring.
	candidateRE = regexp.MustCompile(`(?i)((?:total[^0-9$]{0,6})?(?:\$|usd|rs\.?\s?)?\s?[0-9]{1,3}(?:[.,][0-9]{3})*(?:[.,][0-9]{2})?)`)
	decimalRE   = regexp.MustCompile(`[.,][0-9]{2}$`)
)

// FindCandidates extracts substrings of OCR text that could be monetary
// amounts, filtered by plausibility heuristics.
func FindCandidates(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, m := range candidateRE.FindAllString(line, -1) {
			m = strings.TrimSpace(m)
			if isPlausibleAmount(m) {
				out = append(out, m)
			}
		}
	}
	return out
}

// ParseAmount normalizes a matched substring into minor units. A trailing
// two-digit group after the last separator is treated as the decimal part
// ("1,234.56" -> 123456, "10.000,00" -> 1000000); otherwise the number is
// whole currency units ("1,200" -> 120000).
func ParseAmount(found string) (money.Amount, error) {
	foundTrim := strings.TrimSpace(found)
	if foundTrim == "" {
		return 0, fmt.Errorf("empty")
	}
	var whole, cents string
	if decimalRE.MatchString(foundTrim) {
		sep := strings.LastIndexAny(foundTrim, ".,")
		whole = onlyDigits(foundTrim[:sep])
		cents = foundTrim[sep+1:]
	} else {
		whole = onlyDigits(foundTrim)
		cents = "00"
	}
	if whole == "" {
		return 0, fmt.Errorf("no digits extracted from %q", found)
	}
	n, err := strconv.ParseInt(whole+cents, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", found, err)
	}
	if n < 0 {
		n = -n
	}
	return money.Amount(n), nil
}

// isPlausibleAmount applies lightweight heuristics to decide whether a
// matched numeric substring likely represents a monetary amount rather
// than a phone number, card fragment, or receipt id.
func isPlausibleAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	low := strings.ToLower(s)
	if strings.Contains(low, "$") || strings.Contains(low, "usd") || strings.Contains(low, "rs") {
		return true
	}
	d := onlyDigits(s)
	if d == "" || d[0] == '0' {
		return false
	}
	if strings.ContainsAny(s, ".,") {
		return len(d) >= 3
	}
	// bare digit runs: ids and phone numbers tend to be long
	if len(d) > 7 || len(d) < 2 {
		return false
	}
	return true
}

// BestAmount selects the most likely amount among candidates. Currency
// markers and a "total" context outrank bare numbers; ties go to the
// larger amount.
func BestAmount(matches []string) (money.Amount, string, bool) {
	type cand struct {
		amt   money.Amount
		raw   string
		score int
	}
	scoreFor := func(raw string) int {
		s := 0
		low := strings.ToLower(raw)
		if strings.Contains(low, "$") || strings.Contains(low, "usd") || strings.Contains(low, "rs") {
			s += 10
		}
		if strings.Contains(low, "total") {
			s += 8
		}
		if decimalRE.MatchString(strings.TrimSpace(raw)) {
			s += 5
		}
		if len(onlyDigits(raw)) >= 4 {
			s += 1
		}
		return s
	}
	var best *cand
	for _, m := range matches {
		amt, err := ParseAmount(m)
		if err != nil || amt <= 0 {
			continue
		}
		c := cand{amt: amt, raw: m, score: scoreFor(m)}
		if best == nil || c.score > best.score || (c.score == best.score && c.amt > best.amt) {
			b := c
			best = &b
		}
	}
	if best == nil {
		return 0, "", false
	}
	return best.amt, best.raw, true
}

// onlyDigits extracts decimal digits from a string.
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
