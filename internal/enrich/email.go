package enrich

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"leadgen-engine/internal/domain"
)

// GuessEmail composes a plausible first.last@host address from the
// company's website host. The result is a guess, never a verified mailbox.
// Any failure along the way returns nil.
func (e *Enricher) GuessEmail(ctx context.Context, name, company string) *string {
	name = strings.TrimSpace(name)
	host := e.companyHost(ctx, company)
	if host == "" {
		return nil
	}

	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		// can't guess a first.last address from a single token
		return nil
	}
	first := strings.ToLower(tokens[0])
	last := strings.ToLower(tokens[len(tokens)-1])

	email := fmt.Sprintf("%s.%s@%s", first, last, host)
	log.Printf("[email] guessed %s", email)
	return &email
}

// companyHost resolves a company's website host: cache, then search, then
// the credential-less fallback finder. Hits are written back to the cache.
func (e *Enricher) companyHost(ctx context.Context, company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return ""
	}

	if e.Domains != nil {
		cached, err := e.Domains.GetCompanyDomain(ctx, company)
		if err != nil {
			log.Printf("[email] domain cache read err company=%q err=%v", company, err)
		}
		if cached != "" {
			return cached
		}
	}

	var host string
	results := e.search(ctx, fmt.Sprintf(`"%s" official website`, company), 1)
	if len(results) > 0 {
		host = hostFromLink(results[0].Link)
	}

	if host == "" && e.Fallback != nil {
		found, err := e.Fallback.FindCompanyDomain(ctx, company)
		if err != nil {
			log.Printf("[email] fallback domain lookup err company=%q err=%v", company, err)
		}
		host = found
	}

	if host == "" {
		log.Printf("[email] no domain company=%q", company)
		return ""
	}

	if e.Domains != nil {
		if err := e.Domains.UpsertCompanyDomain(ctx, company, host); err != nil {
			log.Printf("[email] domain cache write err company=%q err=%v", company, err)
		}
	}
	return host
}

// EnrichContact composes the full enrichment snapshot for one contact.
// Profile discovery and email guessing are independent: a missing profile
// still gets an email guess, and vice versa.
func (e *Enricher) EnrichContact(ctx context.Context, c domain.Contact) domain.ContactEnrichment {
	out := domain.ContactEnrichment{
		Source:     SourceSerpAPI,
		Confidence: domain.ConfidenceLow,
	}
	if strings.TrimSpace(c.FullName) == "" || strings.TrimSpace(c.Company) == "" {
		return out
	}

	out.LinkedInURL, out.Designation = e.ExtractDesignation(ctx, c.FullName, c.Company)
	out.WorkEmail = e.GuessEmail(ctx, c.FullName, c.Company)

	if out.LinkedInURL != nil {
		out.Confidence = domain.ConfidenceMedium
	}
	return out
}

func hostFromLink(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	return strings.TrimPrefix(host, "www.")
}
