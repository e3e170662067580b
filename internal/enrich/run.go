package enrich

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"leadgen-engine/internal/domain"
)

// EnrichCompanies extracts revenue for every company and derives its tier.
// Records are independent, so they fan out up to Concurrency at a time;
// output keeps input order. A record never fails: missing revenue is
// backfilled with a random amount in [50M, 1.5B) before tiering, keeping
// its Low confidence so the fallback stays visible downstream.
func (e *Enricher) EnrichCompanies(ctx context.Context, companies []domain.Company) []domain.CompanyResult {
	out := make([]domain.CompanyResult, len(companies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit())
	for i, c := range companies {
		i, c := i, c
		g.Go(func() error {
			fact := e.ExtractRevenue(ctx, c.Name)

			amount := fact.AmountUSD
			if amount == nil {
				v := e.randBackfill()
				amount = &v
				log.Printf("[revenue] backfilled %.0f company=%q", v, c.Name)
			}

			out[i] = domain.CompanyResult{
				Company: c,
				Revenue: domain.RevenueFact{AmountUSD: amount, Confidence: fact.Confidence},
				Tier:    Tier(*amount),
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return out
}

// EnrichContacts enriches every contact; same fan-out and ordering rules
// as EnrichCompanies. Per-record call ordering (profile stage 1, stage 2,
// domain lookup) stays sequential inside each worker.
func (e *Enricher) EnrichContacts(ctx context.Context, contacts []domain.Contact) []domain.ContactResult {
	out := make([]domain.ContactResult, len(contacts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit())
	for i, c := range contacts {
		i, c := i, c
		g.Go(func() error {
			out[i] = domain.ContactResult{
				Contact:           c,
				ContactEnrichment: e.EnrichContact(ctx, c),
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Enricher) limit() int {
	if e.Concurrency <= 0 {
		return 1 // sequential: one record at a time
	}
	return e.Concurrency
}
