package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// domainBlocklist rejects aggregator and job-board hosts that outrank
// company sites for "official website" queries. Guessing an email at one
// of these is worse than guessing nothing.
var domainBlocklist = []string{
	"linkedin.com",
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"wikipedia.org",
	"crunchbase.com",
	"glassdoor.com",
	"indeed.com",
	"zoominfo.com",
	"bloomberg.com",
	"yellowpages.com",
}

// DomainFinder resolves a company's website host by scraping the
// DuckDuckGo HTML results page. It needs no API credential, so it serves
// as the fallback when the search gateway yields nothing. Fetches are
// rate-limited per host to stay polite.
type DomainFinder struct {
	baseURL string
	http    *http.Client
	limiter *HostLimiter
}

func NewDomainFinder() *DomainFinder {
	return &DomainFinder{
		baseURL: "https://duckduckgo.com/html/",
		http:    &http.Client{Timeout: 12 * time.Second},
		limiter: NewHostLimiter(1, 2), // 1 req/s per host
	}
}

// NewDomainFinderAt points the finder at a different results page,
// for tests.
func NewDomainFinderAt(baseURL string) *DomainFinder {
	f := NewDomainFinder()
	f.baseURL = baseURL
	return f
}

// FindCompanyDomain returns the first non-blocked result host for
// "<company> official website", or "" when nothing usable turns up.
// Transport and parse failures return "" rather than an error: callers
// treat a missing domain and a failed lookup identically.
func (f *DomainFinder) FindCompanyDomain(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}

	query := fmt.Sprintf("%s official website", sanitizeCompanyForSearch(company))
	u := f.baseURL + "?q=" + url.QueryEscape(query)

	if err := f.limiter.WaitURL(ctx, u); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil
	}

	var best string

	// DDG HTML results: <a class="result__a" href="...">
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		host := hostFromURL(decodeDDGRedirect(href))
		if host == "" {
			return true
		}

		host = strings.ToLower(strings.TrimPrefix(host, "www."))
		if isBlockedDomain(host) {
			return true
		}

		best = host
		return false // stop at first good domain
	})

	return best, nil
}

func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG sometimes uses /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func isBlockedDomain(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

func sanitizeCompanyForSearch(s string) string {
	s = strings.TrimSpace(s)
	// remove common suffixes that confuse search
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
	}
	r := strings.NewReplacer(repls...)
	s = r.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
