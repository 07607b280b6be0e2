package auditor

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/PentesterFlow/accessauditor/internal/recon"
	"github.com/PentesterFlow/accessauditor/internal/report"
)

// AppName names the configuration directory.
const AppName = "accessaudit"

// Report formats.
const (
	FormatTXT  = "txt"
	FormatJSON = "json"
)

// Config holds all auditor configuration.
type Config struct {
	// Target URL to audit
	Target string `json:"target" yaml:"target"`

	// Maximum number of pages visited while crawling
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// User-Agent sent with every request (empty for the default)
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Skip TLS certificate verification
	InsecureSkipVerify bool `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`

	// Directory reports are written to
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Report format: txt or json
	Format string `json:"format" yaml:"format"`

	Verbose bool `json:"verbose" yaml:"verbose"`
	Debug   bool `json:"debug" yaml:"debug"`
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxPages:  recon.DefaultMaxPages,
		OutputDir: report.DefaultDir,
		Format:    FormatTXT,
	}
}

// DefaultConfigPath returns the config file location under the XDG config
// directory. The file need not exist.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// LoadFromFile loads configuration from a file (YAML or JSON). Fields
// missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		config = DefaultConfig()
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile writes the configuration, as JSON when path ends in .json
// and YAML otherwise. Parent directories are created.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target URL is required")
	}

	u, err := url.Parse(c.Target)
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("target URL must use http or https, got %q", c.Target)
	}
	if u.Host == "" {
		return fmt.Errorf("target URL has no host: %q", c.Target)
	}

	if c.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	if c.Format != FormatTXT && c.Format != FormatJSON {
		return fmt.Errorf("unsupported format %q (want %s or %s)", c.Format, FormatTXT, FormatJSON)
	}

	return nil
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
