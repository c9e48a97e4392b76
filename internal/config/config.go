package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LIFEBOOST"

type Config struct {
	Storage   StorageConfig  `mapstructure:"storage"`
	Log       LogConfig      `mapstructure:"log"`
	Reminders ReminderConfig `mapstructure:"reminders"`
	UI        UIConfig       `mapstructure:"ui"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file sqlite memory"`
	Path    string `mapstructure:"path" validate:"required_unless=Backend memory"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	// File is where logs go; empty means stderr, or nowhere while the TUI
	// owns the terminal.
	File string `mapstructure:"file"`
}

type ReminderConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Lookahead time.Duration `mapstructure:"lookahead" validate:"gt=0,lte=24h"`
	Buffer    int           `mapstructure:"buffer" validate:"min=1,max=4096"`
}

type UIConfig struct {
	DaysBefore int `mapstructure:"days_before" validate:"min=0,max=60"`
	DaysAfter  int `mapstructure:"days_after" validate:"min=0,max=60"`
}

// DataDir is where snapshots live unless storage.path says otherwise.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "lifeboost")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "lifeboost")
}

func defaultPath(backend string) string {
	switch backend {
	case "sqlite":
		return filepath.Join(DataDir(), "lifeboost.db")
	case "file":
		return filepath.Join(DataDir(), "lifeboost.json")
	default:
		return ""
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.lookahead", "6h")
	v.SetDefault("reminders.buffer", 64)
	v.SetDefault("ui.days_before", 3)
	v.SetDefault("ui.days_after", 7)
}

// Load reads configuration from an optional TOML file and the environment.
// A .env file in the working directory is loaded first; variables use the
// LIFEBOOST_ prefix with dots replaced by underscores, for example
// LIFEBOOST_STORAGE_BACKEND. An explicit configFile must exist.
func Load(configFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if configFile == "" {
		configFile = os.Getenv(envPrefix + "_CONFIG")
	}
	explicit := configFile != ""
	if explicit {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "lifeboost"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = defaultPath(c.Storage.Backend)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
