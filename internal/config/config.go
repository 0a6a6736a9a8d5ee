// package config loads application configuration from environment variables
package config

import "os"

// Config holds the runtime configuration values read at process start.
// Unlike other services in this family, the database settings are NOT
// required: when DATABASE_URL or DATABASE_NAME is missing the process
// still starts and the store simply reports itself unavailable on
// every data-dependent request.  This keeps health and diagnostic
// endpoints reachable on misconfigured deployments.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DatabaseURL  string // MySQL DSN prefix, e.g. "user:pass@tcp(host:3306)"
    DatabaseName string // database to select
}

// Load reads configuration values from environment variables and
// returns a Config.  Nothing here is fatal; defaults cover the
// optional values.
func Load() Config {
    return Config{
        Env:          getenv("APP_ENV", "dev"),
        Port:         getenv("PORT", "8000"),
        DatabaseURL:  os.Getenv("DATABASE_URL"),
        DatabaseName: os.Getenv("DATABASE_NAME"),
    }
}
