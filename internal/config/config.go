// Package config loads runtime settings from defaults, an optional YAML
// file, a .env file and OTTODOUGH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Site       SiteConfig       `mapstructure:"site"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
}

// LogConfig controls the log sink.
type LogConfig struct {
	// off, normal, verbose
	Level string `mapstructure:"level" validate:"required,oneof=off normal verbose"`
	// Empty means stderr.
	File string `mapstructure:"file"`
}

// DatabaseConfig locates the sqlite file backing palettes.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SiteConfig drives the OG image generator.
type SiteConfig struct {
	Author     string `mapstructure:"author"`
	ContentDir string `mapstructure:"content_dir" validate:"required"`
	OutDir     string `mapstructure:"out_dir" validate:"required"`
	Font       string `mapstructure:"font"`
}

// CalculatorConfig seeds new calculator sessions.
type CalculatorConfig struct {
	FlourName    string  `mapstructure:"flour_name" validate:"required"`
	FlourMass    float64 `mapstructure:"flour_mass" validate:"gte=0"`
	Hydration    float64 `mapstructure:"hydration" validate:"gte=0,lte=1000"`
	StarterRatio float64 `mapstructure:"starter_ratio" validate:"gte=0,lte=1000"`
	SaltRatio    float64 `mapstructure:"salt_ratio" validate:"gte=0,lte=100"`
}

// Load reads configuration with priority env > file > defaults. An empty
// path searches for ottodough.yaml in the working directory and
// ./.ottodough; a missing file is not an error.
func Load(path string) (*Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ottodough")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./.ottodough")
	}

	v.SetEnvPrefix("OTTODOUGH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without consulting any
// file or environment.
func Default() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "normal")
	v.SetDefault("log.file", ".ottodough/ottodough.log")

	v.SetDefault("database.path", ".ottodough/ottodough.db")

	v.SetDefault("site.author", "")
	v.SetDefault("site.content_dir", "content")
	v.SetDefault("site.out_dir", "public")
	v.SetDefault("site.font", "")

	v.SetDefault("calculator.flour_name", "All-Purpose Flour")
	v.SetDefault("calculator.flour_mass", 500.0)
	v.SetDefault("calculator.hydration", 70.0)
	v.SetDefault("calculator.starter_ratio", 20.0)
	v.SetDefault("calculator.salt_ratio", 2.0)
}
