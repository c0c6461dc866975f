package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DriverRod  = "rod"
	DriverHTTP = "http"
)

type Config struct {
	Site          SiteConfig          `yaml:"site"`
	Driver        string              `yaml:"driver"`
	Rod           RodConfig           `yaml:"rod"`
	HTTP          HttpConfig          `yaml:"http"`
	Output        OutputConfig        `yaml:"output"`
	Normalize     NormalizeConfig     `yaml:"normalize"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
	SelectorsFile string              `yaml:"selectors_file"`

	// Selectors is filled from SelectorsFile, or from DefaultSelectors when no file is set.
	Selectors Selectors `yaml:"-"`
}

type SiteConfig struct {
	BaseURL           string `yaml:"base_url"`
	EntertainmentPath string `yaml:"entertainment_path"`
	CartoonPath       string `yaml:"cartoon_path"`
	ArticleLimit      int    `yaml:"article_limit"`
	CategoryLabel     string `yaml:"category_label"`
}

type RodConfig struct {
	Headless     bool   `yaml:"headless"`
	ChromePath   string `yaml:"chrome_path"`
	PageTimeoutS int    `yaml:"page_timeout_s"`
	WaitTimeoutS int    `yaml:"wait_timeout_s"`
}

type HttpConfig struct {
	UserAgent        string `yaml:"user_agent"`
	AcceptLanguage   string `yaml:"accept_language"`
	ConnectTimeoutMS int    `yaml:"connect_timeout_ms"`
	TotalTimeoutMS   int    `yaml:"total_timeout_ms"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type NormalizeConfig struct {
	TrimNBSP       bool `yaml:"trim_nbsp"`
	CollapseSpaces bool `yaml:"collapse_spaces"`
}

type StorageConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
}

// Default returns the settings the scraper runs with when no config file is present.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			BaseURL:           "https://ekantipur.com",
			EntertainmentPath: "/entertainment",
			CartoonPath:       "/cartoon",
			ArticleLimit:      5,
			CategoryLabel:     "मनोरञ्जन",
		},
		Driver: DriverRod,
		Rod: RodConfig{
			Headless:     false,
			PageTimeoutS: 60,
			WaitTimeoutS: 30,
		},
		HTTP: HttpConfig{
			UserAgent:        "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
			AcceptLanguage:   "ne,en;q=0.8",
			ConnectTimeoutMS: 10000,
			TotalTimeoutMS:   30000,
		},
		Output: OutputConfig{
			Path: "output.json",
		},
		Storage: StorageConfig{
			Driver:           "mssql",
			CommandTimeoutMS: 5000,
		},
		Observability: ObservabilityConfig{
			LogLevel:      "info",
			LogMaxSizeMB:  10,
			LogMaxBackups: 3,
		},
		Selectors: DefaultSelectors(),
	}
}

// Validation
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("site.base_url must be an http(s) URL: %s", c.Site.BaseURL)
	}
	if c.Site.EntertainmentPath == "" {
		return fmt.Errorf("site.entertainment_path is required")
	}
	if c.Site.CartoonPath == "" {
		return fmt.Errorf("site.cartoon_path is required")
	}
	if c.Site.ArticleLimit <= 0 {
		return fmt.Errorf("site.article_limit must be > 0")
	}
	if c.Site.CategoryLabel == "" {
		return fmt.Errorf("site.category_label is required")
	}
	if c.Driver != DriverRod && c.Driver != DriverHTTP {
		return fmt.Errorf("driver must be '%s' or '%s'", DriverRod, DriverHTTP)
	}
	if c.Rod.PageTimeoutS <= 0 {
		return fmt.Errorf("rod.page_timeout_s must be > 0")
	}
	if c.Rod.WaitTimeoutS <= 0 {
		return fmt.Errorf("rod.wait_timeout_s must be > 0")
	}
	if c.Driver == DriverHTTP {
		if c.HTTP.UserAgent == "" {
			return fmt.Errorf("http.user_agent is required")
		}
		if c.HTTP.ConnectTimeoutMS <= 0 {
			return fmt.Errorf("http.connect_timeout_ms must be > 0")
		}
		if c.HTTP.TotalTimeoutMS <= 0 {
			return fmt.Errorf("http.total_timeout_ms must be > 0")
		}
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.Storage.Enabled {
		if c.Storage.Driver != "mssql" {
			return fmt.Errorf("storage.driver must be 'mssql'")
		}
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.enabled is true")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return validateSelectors(&c.Selectors)
}

func (c *Config) EntertainmentURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/") + c.Site.EntertainmentPath
}

func (c *Config) CartoonURL() string {
	return strings.TrimRight(c.Site.BaseURL, "/") + c.Site.CartoonPath
}

// Getters
func (c *Config) GetPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetWaitTimeout() time.Duration {
	return time.Duration(c.Rod.WaitTimeoutS) * time.Second
}

func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.HTTP.ConnectTimeoutMS) * time.Millisecond
}

func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}
