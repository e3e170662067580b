package enrich

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"leadgen-engine/internal/domain"
)

// Currency amount followed by a magnitude word, e.g. "$1.2 billion".
var reRevenue = regexp.MustCompile(`(?i)\$[\d,]+\.?\d*\s*(?:billion|million|trillion)`)

var reNonNumeric = regexp.MustCompile(`[^0-9.]`)

// ExtractRevenue searches for a company's annual revenue and normalizes the
// first snippet match into a USD amount. The first snippet (in gateway
// order) with a parseable positive amount wins; there is deliberately no
// best-match comparison across snippets. Not-found is {nil, Low}, never an
// error.
func (e *Enricher) ExtractRevenue(ctx context.Context, companyName string) domain.RevenueFact {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return domain.RevenueFact{Confidence: domain.ConfidenceLow}
	}

	log.Printf("[revenue] searching: %s", companyName)
	query := fmt.Sprintf(`"%s" annual revenue`, companyName)
	results := e.search(ctx, query, 5)

	for _, r := range results {
		if r.Snippet == "" {
			continue
		}
		m := reRevenue.FindString(r.Snippet)
		if m == "" {
			continue
		}
		v, ok := parseRevenue(m)
		if !ok {
			// malformed mantissa or non-positive value: keep scanning
			continue
		}
		log.Printf("[revenue] found %q -> %.0f company=%q", m, v, companyName)
		return domain.RevenueFact{AmountUSD: &v, Confidence: domain.ConfidenceMedium}
	}

	log.Printf("[revenue] none found company=%q", companyName)
	return domain.RevenueFact{Confidence: domain.ConfidenceLow}
}

// parseRevenue turns a matched string like "$1.2 billion" into a USD amount.
func parseRevenue(m string) (float64, bool) {
	s := strings.ToLower(m)

	var scale float64
	switch {
	case strings.Contains(s, "trillion"):
		scale = 1e12
	case strings.Contains(s, "billion"):
		scale = 1e9
	case strings.Contains(s, "million"):
		scale = 1e6
	default:
		return 0, false
	}

	mantissa := reNonNumeric.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		return 0, false
	}
	v *= scale
	if v <= 0 {
		return 0, false
	}
	return v, true
}
