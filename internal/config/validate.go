package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims override entries, drops duplicates, and
// returns a normalized copy alongside any findings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.Search.Concurrency < 0 {
		res.addErr("search.concurrency must be >= 0")
	}
	if out.Search.Concurrency > 16 {
		res.addWarn("search.concurrency is very high (%d) and may hit provider rate limits.", out.Search.Concurrency)
	}

	seen := map[string]bool{}
	var rules []OverrideRule
	for i, r := range out.Enrich.Overrides {
		r.Name = strings.TrimSpace(r.Name)
		r.Company = strings.TrimSpace(r.Company)
		r.Designation = strings.TrimSpace(r.Designation)

		if r.Name == "" || r.Company == "" {
			res.addErr("enrich.overrides[%d]: name and company are required", i)
			continue
		}
		if r.Designation == "" {
			res.addWarn("enrich.overrides[%d] (%s / %s): empty designation does nothing", i, r.Name, r.Company)
			continue
		}

		key := strings.ToLower(r.Name) + "\x00" + strings.ToLower(r.Company)
		if seen[key] {
			res.addWarn("duplicate override for (%s, %s); keeping the first", r.Name, r.Company)
			continue
		}
		seen[key] = true
		rules = append(rules, r)
	}
	out.Enrich.Overrides = rules

	return out, res
}
