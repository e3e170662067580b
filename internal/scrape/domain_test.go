package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindCompanyDomain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Acme official website" {
			t.Errorf("q = %q", got)
		}
		_, _ = w.Write([]byte(`<html><body>
			<a class="result__a" href="https://www.linkedin.com/company/acme">Acme | LinkedIn</a>
			<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.acme.com%2F&amp;rut=abc">Acme</a>
			<a class="result__a" href="https://acme.dev/">Acme Dev</a>
		</body></html>`))
	}))
	defer srv.Close()

	f := NewDomainFinderAt(srv.URL)
	// " Inc." suffix is stripped before searching
	host, err := f.FindCompanyDomain(context.Background(), "Acme Inc.")
	if err != nil {
		t.Fatalf("FindCompanyDomain: %v", err)
	}
	if host != "acme.com" {
		t.Errorf("host = %q, want acme.com (blocked host skipped, redirect decoded)", host)
	}
}

func TestFindCompanyDomain_NothingUsable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a class="result__a" href="https://www.glassdoor.com/acme">Reviews</a>
		</body></html>`))
	}))
	defer srv.Close()

	f := NewDomainFinderAt(srv.URL)
	host, err := f.FindCompanyDomain(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("FindCompanyDomain: %v", err)
	}
	if host != "" {
		t.Errorf("host = %q, want empty", host)
	}
}

func TestFindCompanyDomain_EmptyCompany(t *testing.T) {
	f := NewDomainFinder()
	host, err := f.FindCompanyDomain(context.Background(), "  ")
	if err != nil || host != "" {
		t.Fatalf("got (%q, %v), want (\"\", nil)", host, err)
	}
}

func TestDecodeDDGRedirect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Facme.com%2F", "https://acme.com/"},
		{"https://acme.com/direct", "https://acme.com/direct"},
	}
	for _, tt := range tests {
		if got := decodeDDGRedirect(tt.in); got != tt.want {
			t.Errorf("decodeDDGRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsBlockedDomain(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"linkedin.com", true},
		{"www.linkedin.com", true},
		{"acme.com", false},
		{"notlinkedin.company", false},
	}
	for _, tt := range tests {
		if got := isBlockedDomain(tt.host); got != tt.want {
			t.Errorf("isBlockedDomain(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestSanitizeCompanyForSearch(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme, Inc.", "Acme"},
		{"Beta LLC", "Beta"},
		{"  Gamma   Labs  ", "Gamma Labs"},
	}
	for _, tt := range tests {
		if got := sanitizeCompanyForSearch(tt.in); got != tt.want {
			t.Errorf("sanitizeCompanyForSearch(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
