// Package config defines converter configuration and loading.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env on top.
// - All loading functions accept context.Context as the first parameter.
package config

// Warcraft Logs API v2 endpoints.
const (
	DefaultTokenURL = "https://www.warcraftlogs.com/oauth/token"
	DefaultAPIURL   = "https://www.warcraftlogs.com/api/v2/client"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// GapMS is the pull gap threshold in milliseconds: an enemy whose
	// appearance is more than this far past the current pull's latest
	// activity starts a new pull.
	GapMS int `koanf:"gap_ms"`

	// ClientID and ClientSecret authenticate against the WCL API v2.
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`

	// TokenURL and APIURL point at the WCL OAuth and GraphQL endpoints.
	TokenURL string `koanf:"token_url"`
	APIURL   string `koanf:"api_url"`

	// Fight selects the fight to convert: "last" or a numeric fight id.
	Fight string `koanf:"fight"`

	// OutputDir is where the export file is written.
	OutputDir string `koanf:"output_dir"`

	// PageLimit caps events per page when fetching from WCL.
	PageLimit int `koanf:"page_limit"`

	// DedupeSize bounds the seen-set used to drop page-boundary duplicates.
	DedupeSize int `koanf:"dedupe_size"`

	// MetricsAddr, when set, exposes Prometheus metrics on this address
	// for the lifetime of the conversion.
	MetricsAddr string `koanf:"metrics_addr"`

	// RouteName is recorded as the route's name in the export.
	RouteName string `koanf:"route_name"`

	// Week is the affix week recorded in the export.
	Week int `koanf:"week"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:   "info",
		GapMS:      10_000,
		TokenURL:   DefaultTokenURL,
		APIURL:     DefaultAPIURL,
		Fight:      "last",
		OutputDir:  ".",
		PageLimit:  10_000,
		DedupeSize: 100_000,
		RouteName:  "Imported from WCL",
		Week:       1,
	}
}
