package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/scrape"
	"leadgen-engine/internal/secrets"
	"leadgen-engine/internal/serp"
	"leadgen-engine/internal/sheet"
	"leadgen-engine/internal/store"
)

func main() {
	var (
		inPath      = flag.String("in", "", "input workbook (.xlsx) with Company and Contacts sheets")
		companiesIn = flag.String("companies", "", "company records .csv (alternative to -in)")
		contactsIn  = flag.String("contacts", "", "contact records .csv (alternative to -in)")
		outPath     = flag.String("out", "enriched.xlsx", "output path (.xlsx, or .csv for paired files)")
		cfgPath     = flag.String("config", "", "config file (default: <data-dir>/config.yml)")
		dataDirFlag = flag.String("data-dir", "", "data dir for config and domain cache (or LEADGEN_DATA_DIR)")
		concurrency = flag.Int("concurrency", -1, "records in flight; overrides config when >= 0")
		seed        = flag.Int64("seed", 0, "rng seed for revenue backfill (0 = time-based)")
		setKey      = flag.Bool("set-key", false, "read a SerpAPI key from stdin, store it in the OS keychain, exit")
	)
	flag.Parse()

	_ = godotenv.Load() // .env is optional

	if *setKey {
		storeKeyAndExit()
		return
	}

	dataDir := *dataDirFlag
	if dataDir == "" {
		dataDir = os.Getenv("LEADGEN_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One run at a time per data dir, or concurrent runs fight over the
	// domain cache.
	lock := flock.New(filepath.Join(dataDir, "leadgen.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock %s: %v", lock.Path(), err)
	}
	if !locked {
		log.Fatalf("another run holds %s", lock.Path())
	}
	defer lock.Unlock()

	userCfgPath := *cfgPath
	if userCfgPath == "" {
		userCfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, validation := config.NormalizeAndValidate(cfg)
	for _, w := range validation.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !validation.OK() {
		log.Fatalf("config invalid: %s", strings.Join(validation.Errors, "; "))
	}

	companies, contacts, err := readInputs(*inPath, *companiesIn, *contactsIn)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[input] %d companies, %d contacts", len(companies), len(contacts))

	e, cleanup := buildEnricher(cfg, dataDir, *concurrency, *seed)
	defer cleanup()

	ctx := context.Background()
	log.Printf("[run] enriching companies...")
	companyResults := e.EnrichCompanies(ctx, companies)
	log.Printf("[run] enriching contacts...")
	contactResults := e.EnrichContacts(ctx, contacts)

	if err := writeOutputs(*outPath, companyResults, contactResults); err != nil {
		log.Fatal(err)
	}
	log.Printf("[run] done: wrote %d company rows and %d contact rows to %s",
		len(companyResults), len(contactResults), *outPath)
}

func buildEnricher(cfg config.Config, dataDir string, concurrency int, seed int64) (*enrich.Enricher, func()) {
	key := secrets.GetSerpAPIKey()
	if key == "" {
		log.Printf("[serp] no API key found; searches will yield empty results (set %s or run -set-key)", secrets.EnvAPIKey)
	}
	e := enrich.New(serp.NewClient(key))

	if len(cfg.Enrich.Overrides) > 0 {
		rules := make([]enrich.Override, 0, len(cfg.Enrich.Overrides))
		for _, r := range cfg.Enrich.Overrides {
			rules = append(rules, enrich.Override{Name: r.Name, Company: r.Company, Designation: r.Designation})
		}
		e.Overrides = enrich.NewOverrides(rules)
	}

	e.Concurrency = cfg.Search.Concurrency
	if concurrency >= 0 {
		e.Concurrency = concurrency
	}

	cleanup := func() {}
	if cfg.Search.CacheDomains {
		db, err := store.Open(filepath.Join(dataDir, "leadgen.db"))
		if err != nil {
			// cache is an optimization; run without it
			log.Printf("[store] open failed, domain cache disabled: %v", err)
		} else {
			e.Domains = store.NewDomainCache(db)
			cleanup = func() { _ = db.Close() }
		}
	}

	if cfg.Search.FallbackDomainLookup {
		e.Fallback = scrape.NewDomainFinder()
	}

	if seed != 0 {
		e.SetRandSource(rand.NewSource(seed))
	}
	return e, cleanup
}

func readInputs(inPath, companiesIn, contactsIn string) ([]domain.Company, []domain.Contact, error) {
	if inPath != "" {
		companies, err := sheet.ReadCompanies(inPath)
		if err != nil {
			return nil, nil, err
		}
		contacts, err := sheet.ReadContacts(inPath)
		if err != nil {
			return nil, nil, err
		}
		return companies, contacts, nil
	}
	if companiesIn == "" || contactsIn == "" {
		return nil, nil, fmt.Errorf("pass -in workbook.xlsx, or both -companies and -contacts csv files")
	}
	companies, err := sheet.ReadCompanies(companiesIn)
	if err != nil {
		return nil, nil, err
	}
	contacts, err := sheet.ReadContacts(contactsIn)
	if err != nil {
		return nil, nil, err
	}
	return companies, contacts, nil
}

func writeOutputs(outPath string, companies []domain.CompanyResult, contacts []domain.ContactResult) error {
	if strings.EqualFold(filepath.Ext(outPath), ".csv") {
		base := strings.TrimSuffix(outPath, filepath.Ext(outPath))
		if err := sheet.WriteCompaniesCSV(base+"_companies.csv", companies); err != nil {
			return err
		}
		return sheet.WriteContactsCSV(base+"_contacts.csv", contacts)
	}
	return sheet.WriteWorkbook(outPath, companies, contacts)
}

func storeKeyAndExit() {
	fmt.Fprint(os.Stderr, "SerpAPI key: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		log.Fatal("no key read from stdin")
	}
	if err := secrets.SetSerpAPIKey(strings.TrimSpace(scanner.Text())); err != nil {
		log.Fatalf("store key: %v", err)
	}
	log.Printf("key stored in OS keychain (service=%s)", secrets.KeyringService)
}
