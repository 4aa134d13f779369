package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the research service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Search    SearchConfig    `mapstructure:"search"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ProvidersConfig holds the external API credentials and model choices
type ProvidersConfig struct {
	Exa    ExaConfig    `mapstructure:"exa"`
	Tavily TavilyConfig `mapstructure:"tavily"`
	Gemini GeminiConfig `mapstructure:"gemini"`
}

type ExaConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type TavilyConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type GeminiConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	ImageModel string        `mapstructure:"image_model"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func (g GeminiConfig) Validate() error {
	if g.APIKey == "" {
		return fmt.Errorf("providers.gemini.api_key is required (DOSSIER_PROVIDERS_GEMINI_API_KEY)")
	}
	return nil
}

// SearchConfig tunes the multi-query search layer
type SearchConfig struct {
	QueryDelay     time.Duration `mapstructure:"query_delay"`
	CompanyResults int           `mapstructure:"company_results"`
	PersonResults  int           `mapstructure:"person_results"`
	NewsResults    int           `mapstructure:"news_results"`
	Retries        int           `mapstructure:"retries"`
}

func (s SearchConfig) Validate() error {
	if s.CompanyResults <= 0 || s.PersonResults <= 0 || s.NewsResults <= 0 {
		return fmt.Errorf("search result caps must be > 0")
	}
	if s.Retries < 0 {
		return fmt.Errorf("search.retries must be >= 0")
	}
	return nil
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SearchProviders lists the search backends that have credentials configured.
func (p ProvidersConfig) SearchProviders() []string {
	var out []string
	if p.Exa.APIKey != "" {
		out = append(out, "exa")
	}
	if p.Tavily.APIKey != "" {
		out = append(out, "tavily")
	}
	return out
}

func (p ProvidersConfig) Validate() error {
	if err := p.Gemini.Validate(); err != nil {
		return err
	}
	if len(p.SearchProviders()) == 0 {
		return fmt.Errorf("at least one search provider key is required (providers.exa.api_key or providers.tavily.api_key)")
	}
	return nil
}

// LoadConfig loads config from file and DOSSIER_* environment variables.
// With an empty path a missing config file is fine; env vars carry the rest.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", 45*time.Second)
	v.SetDefault("server.address", ":8080")
	// empty defaults register the keys so AutomaticEnv reaches Unmarshal
	v.SetDefault("providers.exa.api_key", "")
	v.SetDefault("providers.tavily.api_key", "")
	v.SetDefault("providers.gemini.api_key", "")
	v.SetDefault("providers.gemini.model", "gemini-2.0-flash")
	v.SetDefault("providers.gemini.image_model", "gemini-2.0-flash-preview-image-generation")
	v.SetDefault("providers.gemini.timeout", 0)
	v.SetDefault("search.query_delay", 250*time.Millisecond)
	v.SetDefault("search.company_results", 5)
	v.SetDefault("search.person_results", 4)
	v.SetDefault("search.news_results", 8)
	v.SetDefault("search.retries", 1)
	v.SetDefault("telemetry.enabled", true)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("DOSSIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Providers.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
