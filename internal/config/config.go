package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration for the wiglebt tool.
// The credential file is read once at startup and the resulting value is
// passed into the components that need it; there is no package-level state.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - APIAuth: The pre-encoded Basic credential for the WiGLE API, sent verbatim.
// - GoogleAPIKey: Optional Google Maps key; enables reverse geocoding when set.
// - Database: Optional PostgreSQL settings for the lookup history.
type Config struct {
	Env          string         // Env is the current environment: local, development, production.
	APIAuth      string         // APIAuth is the Base64-encoded "user:key" value for the WiGLE API.
	GoogleAPIKey string         // GoogleAPIKey enables the reverse-geocoding feature.
	Database     PostgresConfig // Database holds the postgres lookup-history configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether the lookup history is configured at all.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// defaultConfigFile is where the credential file is expected when neither
// --config nor WIGLE_CONFIG points elsewhere.
const defaultConfigFile = "config.json"

// Load reads the credential file and the environment, and returns the
// assembled configuration. A missing credential file is an error: the caller
// must treat it as fatal and never reach the network.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = setDefaultEnv("WIGLE_CONFIG", defaultConfigFile)
	}

	vpr := viper.New()
	vpr.SetConfigFile(path)
	vpr.SetConfigType("json")

	if err := vpr.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	apiAuth := vpr.GetString("api_auth")
	if apiAuth == "" {
		return nil, fmt.Errorf("config file %q is missing required key %q", path, "api_auth")
	}

	return &Config{
		Env:          setDefaultEnv("WIGLE_ENV", "production"),
		APIAuth:      apiAuth,
		GoogleAPIKey: vpr.GetString("google_api_key"),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}, nil
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
