package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
)

// Defaults for settings missing from the config file.
const (
	DefaultAddress     = "localhost"
	DefaultPort        = 5100
	DefaultLogLevel    = "info"
	DefaultMaxUploadMB = 32
)

// maxUploadLimitMB bounds max_upload_mb.
const maxUploadLimitMB = 1024

// Config is the server configuration file.
type Config struct {
	Server *Settings `hcl:"server,block"`
}

// Settings is the server block of the configuration file.
type Settings struct {
	Address        string   `hcl:"address,optional"`
	Port           int      `hcl:"port,optional"`
	LogLevel       string   `hcl:"log_level,optional"`
	MaxUploadMB    int      `hcl:"max_upload_mb,optional"`
	ValidateSchema *bool    `hcl:"validate_schema,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{Server: &Settings{}}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	return decodeConfig(file, diags)
}

// ParseConfig parses configuration from HCL source.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	return decodeConfig(file, diags)
}

func decodeConfig(file *hcl.File, diags hcl.Diagnostics) (*Config, error) {
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &Settings{}
	}
	s := c.Server
	if s.Address == "" {
		s.Address = DefaultAddress
	}
	if s.Port == 0 {
		s.Port = DefaultPort
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.MaxUploadMB == 0 {
		s.MaxUploadMB = DefaultMaxUploadMB
	}
	if s.ValidateSchema == nil {
		enabled := true
		s.ValidateSchema = &enabled
	}
}

// Validate checks the configuration for out of range values.
func (c *Config) Validate() error {
	s := c.Server
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port: %d", s.Port)
	}
	if s.MaxUploadMB < 1 || s.MaxUploadMB > maxUploadLimitMB {
		return fmt.Errorf("max_upload_mb must be between 1 and %d, got %d", maxUploadLimitMB, s.MaxUploadMB)
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", s.LogLevel, err)
	}
	for _, origin := range s.AllowedOrigins {
		if origin == "" {
			return fmt.Errorf("allowed_origins must not contain empty entries")
		}
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// SchemaValidation reports whether uploads are checked against the tree
// schema.
func (c *Config) SchemaValidation() bool {
	return c.Server.ValidateSchema == nil || *c.Server.ValidateSchema
}
