package enrich

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// profilePathMarker distinguishes personal profiles from company pages,
// job posts, and pulse articles.
const profilePathMarker = "linkedin.com/in/"

type patternScope int

const (
	scopeFull    patternScope = iota // "<title> | <snippet>"
	scopeTitle                       // result title only
	scopeSnippet                     // result snippet only
)

// titlePattern is one extraction rule. Patterns run in order; within a
// multi-match pattern, candidates keep text order. Ties in the final score
// keep the first-seen candidate, so this ordering is load-bearing.
type titlePattern struct {
	base  int
	scope patternScope
	multi bool
	build func(name, company string) *regexp.Regexp
}

var titlePatterns = []titlePattern{
	// "Title at/@ Company" anywhere in the combined text.
	{100, scopeFull, true, func(_, company string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)([\w\s,'()-]+?)\s*(?:@|at)\s+` + regexp.QuoteMeta(company))
	}},
	// "Title - Company" / "Title | Company" / "Title · Company", title only.
	{80, scopeTitle, true, func(_, company string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)([\w\s,'()-]+?)\s*[-|·]\s*` + regexp.QuoteMeta(company))
	}},
	// "Name, Title," with the name at the start of the combined text.
	{60, scopeFull, false, func(name, _ string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(name) + `\s*[,·-]\s*([^,·|]+)`)
	}},
	// "I'm a Title" / "is a Title", snippet only.
	{40, scopeSnippet, false, func(_, _ string) *regexp.Regexp {
		return regexp.MustCompile(`(?i)(?:i'm a|is a)\s+([\w\s,'()-]+)`)
	}},
}

// ignoreWords rejects LinkedIn page chrome and history/academic phrasing
// that regularly leaks into title candidates. Matched as lowercase
// substrings, so "ex" also kills "executive"; that is the accepted cost of
// catching "ex-Google" and friends.
var ignoreWords = []string{
	"prev", "previous", "former", "ex", "student", "graduate",
	"university", "college", "institute", "school", "academy",
	"linkedin", "profile", "connections", "followers", "view", "mutual",
	"experience", "education", "volunteer", "skills", "endorsements",
	"tufts",
}

// jobKeywords earn a candidate a +20 bonus: real titles almost always
// carry one of these.
var jobKeywords = []string{
	"manager", "director", "engineer", "lead", "head", "specialist",
	"sde", "intern", "consultant", "analyst", "architect",
	"vp", "president", "officer", "ca", "cpa", "cma",
}

type candidate struct {
	text string
	base int
}

// ExtractDesignation discovers a contact's LinkedIn profile via a
// two-stage search and extracts their job title from the result's title
// and snippet. Either return value may be nil; email guessing does not
// depend on this succeeding.
func (e *Enricher) ExtractDesignation(ctx context.Context, name, company string) (linkedinURL, designation *string) {
	name = strings.TrimSpace(name)
	company = strings.TrimSpace(company)
	if name == "" || company == "" {
		return nil, nil
	}

	log.Printf("[contact] enriching: %s at %s", name, company)

	// Stage 1: broad site search. Stage 2 narrows to /in/ paths only when
	// stage 1 didn't land on a personal profile.
	results := e.search(ctx, fmt.Sprintf(`"%s" "%s" site:linkedin.com`, name, company), 1)
	if len(results) == 0 || !strings.Contains(results[0].Link, profilePathMarker) {
		log.Printf("[contact] broad search missed a profile, retrying /in/ name=%q", name)
		results = e.search(ctx, fmt.Sprintf(`"%s" "%s" linkedin profile site:linkedin.com/in/`, name, company), 1)
	}

	if len(results) > 0 && strings.Contains(results[0].Link, profilePathMarker) {
		top := results[0]
		link := top.Link
		linkedinURL = &link
		if best, ok := bestTitleCandidate(name, company, top.Title, top.Snippet); ok {
			designation = &best
		}
	}

	if designation == nil {
		if d, ok := e.Overrides.Lookup(name, company); ok {
			log.Printf("[contact] manual override designation=%q name=%q", d, name)
			designation = &d
		}
	}

	if designation != nil {
		log.Printf("[contact] designation=%q name=%q", *designation, name)
	} else {
		log.Printf("[contact] no designation name=%q", name)
	}
	return linkedinURL, designation
}

// bestTitleCandidate runs the pattern table over one search result and
// picks the highest-scoring cleaned candidate. Selection is strictly
// greater-than, so equal scores keep the earliest candidate and repeated
// runs over the same text are deterministic.
func bestTitleCandidate(name, company, title, snippet string) (string, bool) {
	fullText := title + " | " + snippet

	var candidates []candidate
	for _, p := range titlePatterns {
		var text string
		switch p.scope {
		case scopeTitle:
			text = title
		case scopeSnippet:
			text = snippet
		default:
			text = fullText
		}

		re := p.build(name, company)
		if p.multi {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				candidates = append(candidates, candidate{text: m[1], base: p.base})
			}
		} else if m := re.FindStringSubmatch(text); m != nil {
			candidates = append(candidates, candidate{text: m[1], base: p.base})
		}
	}

	// Candidates often begin with a repeat of the person's own name.
	nameStrip := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(name) + `\s*[-–—,·|.]?\s*`)
	ignore := ignoreKeywords(name, company)

	best := ""
	highest := -1
	for _, c := range candidates {
		cleaned := strings.TrimSpace(nameStrip.ReplaceAllString(c.text, ""))
		cleaned = strings.Trim(cleaned, " -|·,")
		if !validTitle(cleaned, ignore) {
			continue
		}

		score := c.base
		if containsAny(strings.ToLower(cleaned), jobKeywords) {
			score += 20
		}
		if score > highest {
			highest = score
			best = cleaned
		}
	}
	return best, best != ""
}

// ignoreKeywords extends the fixed reject list with the company's own name
// and every word of the person's name longer than two characters.
func ignoreKeywords(name, company string) []string {
	kws := make([]string, 0, len(ignoreWords)+4)
	kws = append(kws, ignoreWords...)
	kws = append(kws, strings.ToLower(company))
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		if len(tok) > 2 {
			kws = append(kws, tok)
		}
	}
	return kws
}

func validTitle(cleaned string, ignore []string) bool {
	if cleaned == "" || len(cleaned) < 3 || len(cleaned) > 50 {
		return false
	}
	if strings.Contains(cleaned, "...") || strings.Contains(cleaned, "…") {
		return false
	}
	low := strings.ToLower(cleaned)
	for _, kw := range ignore {
		if kw != "" && strings.Contains(low, kw) {
			return false
		}
	}
	return true
}

func containsAny(haystackLower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystackLower, n) {
			return true
		}
	}
	return false
}
