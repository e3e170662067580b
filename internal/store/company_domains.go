package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// DomainCache persists resolved company website hosts so repeated runs
// don't re-search companies they already resolved. It satisfies the
// enricher's DomainStore contract.
type DomainCache struct {
	db *sql.DB
}

func NewDomainCache(db *DB) *DomainCache {
	return &DomainCache{db: db.Pool}
}

// GetCompanyDomain returns the cached host or "" if missing.
func (c *DomainCache) GetCompanyDomain(ctx context.Context, company string) (string, error) {
	company = normalizeCompanyKey(company)
	if company == "" {
		return "", nil
	}

	var host string
	err := c.db.QueryRowContext(ctx,
		`SELECT domain FROM company_domains WHERE company = ? LIMIT 1;`,
		company,
	).Scan(&host)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(host), nil
}

func (c *DomainCache) UpsertCompanyDomain(ctx context.Context, company, host string) error {
	company = normalizeCompanyKey(company)
	host = strings.ToLower(strings.TrimSpace(host))

	if company == "" || host == "" {
		return nil
	}

	_, err := c.db.ExecContext(ctx, `
INSERT INTO company_domains(company, domain, fetched_at)
VALUES(?,?,?)
ON CONFLICT(company) DO UPDATE SET
  domain = excluded.domain,
  fetched_at = excluded.fetched_at;
`, company, host, time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
