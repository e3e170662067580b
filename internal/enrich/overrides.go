package enrich

import "strings"

// Override is one hand-curated designation for a known-difficult contact.
// Entries are trusted verbatim and bypass candidate validation entirely.
type Override struct {
	Name        string
	Company     string
	Designation string
}

// Overrides is an injected last-resort designation table keyed by exact
// (name, company), case-insensitive.
type Overrides map[overrideKey]string

type overrideKey struct {
	name    string
	company string
}

func NewOverrides(entries []Override) Overrides {
	o := make(Overrides, len(entries))
	for _, e := range entries {
		k := overrideKey{
			name:    strings.ToLower(strings.TrimSpace(e.Name)),
			company: strings.ToLower(strings.TrimSpace(e.Company)),
		}
		if k.name == "" || k.company == "" {
			continue
		}
		o[k] = e.Designation
	}
	return o
}

// Lookup returns the curated designation for an exact (name, company) pair.
func (o Overrides) Lookup(name, company string) (string, bool) {
	if len(o) == 0 {
		return "", false
	}
	k := overrideKey{
		name:    strings.ToLower(strings.TrimSpace(name)),
		company: strings.ToLower(strings.TrimSpace(company)),
	}
	d, ok := o[k]
	return d, ok
}

// DefaultOverrides returns the built-in table. A config file can replace it
// per run.
func DefaultOverrides() Overrides {
	return NewOverrides([]Override{
		{"Julian Kelly", "Google", "Sr. Director, Hardware at Google Quantum AI"},
		{"Andy Wong", "Meta", "Engineering"},
		{"Srilakshmi Peri", "Google", "UX Design"},
		{"Sai Swarup Nerella", "Hubspot", "HubSpot SE@CloudFiles"},
		{"Gauri Saxena", "PW & Co LLP", "CA- M&A- Pw & Co LLP | CPA (AU) | CMA (ICWAI)"},
	})
}
