package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/poppolopoppo/vsexport/internal/base"
	"github.com/poppolopoppo/vsexport/internal/hal"
)

const (
	CONFIG_NAME = "vsexport"
	ENV_PREFIX  = "VSEXPORT"
	DOTENV_FILE = ".env"
)

/***************************************
 * Config
 ***************************************/

type ManifestConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Compression string `mapstructure:"compression"`
}

// Defaults, then configuration file, then VSEXPORT_* environment, then command-line flags
type Config struct {
	LogLevel         string         `mapstructure:"log_level"`
	WarningsAsErrors bool           `mapstructure:"warnings_as_errors"`
	Exporter         string         `mapstructure:"exporter"`
	Manifest         ManifestConfig `mapstructure:"manifest"`
	Workers          int            `mapstructure:"workers"`
	WindowsKits      string         `mapstructure:"windows_kits"`
}

var DefaultConfig = Config{
	LogLevel: base.LOG_INFO.String(),
	Manifest: ManifestConfig{
		Enabled:     true,
		Compression: "lz4",
	},
	WindowsKits: hal.DefaultWindowsKitsRoot(),
}

func (x *Config) ManifestCompression() (format base.CompressionFormat, err error) {
	if err = format.Set(x.Manifest.Compression); err != nil {
		err = fmt.Errorf("invalid manifest compression %q: %w", x.Manifest.Compression, err)
	}
	return
}

func LoadConfig(v *viper.Viper, root *cobra.Command, configFile string) (*Config, error) {
	setDefaults(v)

	// variables already set in the environment are never overridden by the dotenv file
	if err := godotenv.Load(DOTENV_FILE); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %q: %w", DOTENV_FILE, err)
	}

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(CONFIG_NAME)
		v.AddConfigPath(cwd)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(configFile) > 0 || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
		base.LogVerbose(LogCommand, "no configuration file found, using defaults")
	} else {
		base.LogVerbose(LogCommand, "loaded configuration from %q", v.ConfigFileUsed())
	}

	if err := bindFlags(v, root); err != nil {
		return nil, err
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("warnings_as_errors", DefaultConfig.WarningsAsErrors)
	v.SetDefault("exporter", DefaultConfig.Exporter)
	v.SetDefault("manifest.enabled", DefaultConfig.Manifest.Enabled)
	v.SetDefault("manifest.compression", DefaultConfig.Manifest.Compression)
	v.SetDefault("workers", DefaultConfig.Workers)
	v.SetDefault("windows_kits", DefaultConfig.WindowsKits)
}

func bindFlags(v *viper.Viper, root *cobra.Command) error {
	for key, flag := range map[string]string{
		"log_level":          "log-level",
		"warnings_as_errors": "warnings-as-errors",
		"workers":            "workers",
	} {
		if err := v.BindPFlag(key, root.PersistentFlags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}
