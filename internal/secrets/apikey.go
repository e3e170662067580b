package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "leadgen"
	KeyringAccount = "serpapi"

	EnvAPIKey = "SERPAPI_API_KEY"
)

// GetSerpAPIKey resolves the search credential: environment first (also
// covering .env via godotenv at startup), then the OS keychain. Returns
// "" when neither has one; the gateway degrades to empty results in that
// case, so a missing key is not fatal here.
func GetSerpAPIKey() string {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key
	}
	if key, err := keyring.Get(KeyringService, KeyringAccount); err == nil {
		return strings.TrimSpace(key)
	}
	return ""
}

func SetSerpAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, KeyringAccount, strings.TrimSpace(key))
}

func DeleteSerpAPIKey() error {
	return keyring.Delete(KeyringService, KeyringAccount)
}
