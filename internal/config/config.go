package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-dmcrypt/internal/types"
)

const (
	// EnvPrefix prefixes every environment variable read by the tool, e.g. DMCRYPT_EMAIL
	EnvPrefix = "DMCRYPT"

	configName = "dmcrypt-config"
)

// Config holds settings for container decryption
type Config struct {
	Email        string `mapstructure:"email"`
	Extension    string `mapstructure:"extension"`
	Recursive    bool   `mapstructure:"recursive"`
	Workers      int    `mapstructure:"workers"`
	Overwrite    bool   `mapstructure:"overwrite"`
	StripPadding bool   `mapstructure:"strip_padding"`
	OutputFormat string `mapstructure:"output_format"`
}

// NewViper returns a viper instance with the search paths, environment
// binding and defaults used by Load. Callers bind command flags onto it.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.dmcrypt")
	v.AddConfigPath("/etc/dmcrypt")

	// Set defaults
	v.SetDefault("email", "")
	v.SetDefault("extension", types.ContainerExtension)
	v.SetDefault("recursive", false)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("overwrite", true)
	v.SetDefault("strip_padding", false)
	v.SetDefault("output_format", "table")

	// Allow environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration into a Config.
//
// When configFile is set it must exist; otherwise the search paths are tried
// and a missing file falls back to defaults. fs may be nil to use the OS file system.
func Load(v *viper.Viper, fs afero.Fs, configFile string) (*Config, error) {
	if fs != nil {
		v.SetFs(fs)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the loaded values for consistency
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.Extension == "" {
		return errors.New("extension cannot be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	switch c.OutputFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.OutputFormat)
	}

	return nil
}
