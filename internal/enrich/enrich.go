package enrich

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"leadgen-engine/internal/serp"
)

// SourceSerpAPI tags enrichment rows with the provider that produced them.
const SourceSerpAPI = "serpapi"

// Searcher is the one-operation search contract. Implementations may fail;
// the Enricher swallows every failure at its boundary.
type Searcher interface {
	Search(ctx context.Context, query string, num int) ([]serp.Result, error)
}

// DomainStore caches resolved company website hosts between runs.
type DomainStore interface {
	GetCompanyDomain(ctx context.Context, company string) (string, error)
	UpsertCompanyDomain(ctx context.Context, company, host string) error
}

// DomainFinder resolves a company website host without an API credential.
type DomainFinder interface {
	FindCompanyDomain(ctx context.Context, company string) (string, error)
}

// Enricher runs the extraction pipeline. All fields except Searcher are
// optional; extractors degrade to null facts rather than failing.
type Enricher struct {
	Searcher    Searcher
	Overrides   Overrides
	Domains     DomainStore  // nil disables the company-domain cache
	Fallback    DomainFinder // nil disables credential-less domain lookup
	Concurrency int          // records in flight; <=0 means sequential

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New constructs an Enricher with the default override table and a
// time-seeded RNG for revenue backfill.
func New(s Searcher) *Enricher {
	return &Enricher{
		Searcher:  s,
		Overrides: DefaultOverrides(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRandSource replaces the backfill RNG, for reproducible runs and tests.
func (e *Enricher) SetRandSource(src rand.Source) {
	e.mu.Lock()
	e.rng = rand.New(src)
	e.mu.Unlock()
}

// search is the gateway boundary: every failure (missing credential,
// transport, provider, decode) is logged and collapsed to an empty result
// list. Nothing past this point ever observes an error.
func (e *Enricher) search(ctx context.Context, query string, num int) []serp.Result {
	if e.Searcher == nil {
		return nil
	}
	results, err := e.Searcher.Search(ctx, query, num)
	if err != nil {
		log.Printf("[search] %v query=%q", err, query)
		return nil
	}
	return results
}

func (e *Enricher) randBackfill() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	// uniform in [50M, 1.5B)
	return float64(50_000_000 + e.rng.Int63n(1_450_000_000))
}
