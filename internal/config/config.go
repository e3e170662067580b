package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type OverrideRule struct {
	Name        string `yaml:"name"`
	Company     string `yaml:"company"`
	Designation string `yaml:"designation"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		Concurrency          int  `yaml:"concurrency"`            // records in flight; 0 = sequential
		FallbackDomainLookup bool `yaml:"fallback_domain_lookup"` // credential-less DDG domain finder
		CacheDomains         bool `yaml:"cache_domains"`          // sqlite company->domain cache
	} `yaml:"search"`

	Enrich struct {
		// Hand-curated designations for contacts the automated extraction
		// cannot crack. Looked up by exact (name, company), case-insensitive.
		Overrides []OverrideRule `yaml:"overrides"`
	} `yaml:"enrich"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
