package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"leadgen-engine/internal/serp"
)

func officialSiteResult(link string) []serp.Result {
	return []serp.Result{{Title: "Acme", Snippet: "Welcome", Link: link}}
}

func TestGuessEmail(t *testing.T) {
	fake := &fakeSearcher{handler: func(string, int) ([]serp.Result, error) {
		return officialSiteResult("https://www.acme.com/about"), nil
	}}
	e := New(fake)

	got := e.GuessEmail(context.Background(), "Jane Doe", "Acme")
	if got == nil || *got != "jane.doe@acme.com" {
		t.Fatalf("email = %v, want jane.doe@acme.com", got)
	}
	if len(fake.calls) != 1 || fake.calls[0].query != `"Acme" official website` {
		t.Fatalf("calls = %+v", fake.calls)
	}

	// middle names: first and last token only
	got = e.GuessEmail(context.Background(), "Jane Q Middle Doe", "Acme")
	if got == nil || *got != "jane.doe@acme.com" {
		t.Fatalf("email = %v, want jane.doe@acme.com", got)
	}
}

func TestGuessEmail_SingleTokenName(t *testing.T) {
	fake := &fakeSearcher{handler: func(string, int) ([]serp.Result, error) {
		return officialSiteResult("https://acme.com"), nil
	}}
	e := New(fake)

	if got := e.GuessEmail(context.Background(), "Cher", "Acme"); got != nil {
		t.Fatalf("email = %q, want nil for single-token name", *got)
	}
}

func TestGuessEmail_NoResult(t *testing.T) {
	fake := &fakeSearcher{handler: func(string, int) ([]serp.Result, error) {
		return nil, errors.New("transport down")
	}}
	e := New(fake)

	if got := e.GuessEmail(context.Background(), "Jane Doe", "Acme"); got != nil {
		t.Fatalf("email = %q, want nil on gateway failure", *got)
	}
}

type memDomainStore struct {
	m      map[string]string
	gets   int
	upsert int
}

func (s *memDomainStore) GetCompanyDomain(_ context.Context, company string) (string, error) {
	s.gets++
	return s.m[strings.ToLower(company)], nil
}

func (s *memDomainStore) UpsertCompanyDomain(_ context.Context, company, host string) error {
	s.upsert++
	s.m[strings.ToLower(company)] = host
	return nil
}

func TestGuessEmail_DomainCache(t *testing.T) {
	fake := &fakeSearcher{handler: func(string, int) ([]serp.Result, error) {
		return officialSiteResult("https://www.acme.com"), nil
	}}
	e := New(fake)
	store := &memDomainStore{m: map[string]string{}}
	e.Domains = store

	// first lookup searches and writes back
	if got := e.GuessEmail(context.Background(), "Jane Doe", "Acme"); got == nil || *got != "jane.doe@acme.com" {
		t.Fatalf("first lookup = %v", got)
	}
	if store.upsert != 1 {
		t.Fatalf("upserts = %d, want 1", store.upsert)
	}

	// second lookup is served from the cache, no new search
	calls := len(fake.calls)
	if got := e.GuessEmail(context.Background(), "John Roe", "Acme"); got == nil || *got != "john.roe@acme.com" {
		t.Fatalf("cached lookup = %v", got)
	}
	if len(fake.calls) != calls {
		t.Fatalf("cached lookup searched anyway: %d -> %d calls", calls, len(fake.calls))
	}
}

type staticFinder struct {
	host string
	err  error
}

func (f staticFinder) FindCompanyDomain(context.Context, string) (string, error) {
	return f.host, f.err
}

func TestGuessEmail_FallbackFinder(t *testing.T) {
	fake := &fakeSearcher{handler: func(string, int) ([]serp.Result, error) {
		return nil, serp.ErrMissingKey
	}}
	e := New(fake)
	e.Fallback = staticFinder{host: "acme.io"}

	got := e.GuessEmail(context.Background(), "Jane Doe", "Acme")
	if got == nil || *got != "jane.doe@acme.io" {
		t.Fatalf("email = %v, want jane.doe@acme.io", got)
	}

	// fallback errors degrade to nil, same as everything else
	e.Fallback = staticFinder{err: errors.New("blocked")}
	if got := e.GuessEmail(context.Background(), "Jane Doe", "Beta LLC"); got != nil {
		t.Fatalf("email = %q, want nil", *got)
	}
}

func TestHostFromLink(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.acme.com/about", "acme.com"},
		{"https://acme.co.uk", "acme.co.uk"},
		{"not a url at all %%%", ""},
		{"/relative/path", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := hostFromLink(tt.in); got != tt.want {
			t.Errorf("hostFromLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
