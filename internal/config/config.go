package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"racer/internal/race"
)

// FileName is the optional config file looked up in the config directory.
const FileName = "racer.cfg.json"

// WindowConfig holds desktop window settings
type WindowConfig struct {
	Scale      int  `mapstructure:"scale"`
	Fullscreen bool `mapstructure:"fullscreen"`
	VSync      bool `mapstructure:"vsync"`
}

// AudioConfig holds engine sound settings
type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"`
}

// ResultsConfig selects where finished races are stored.
type ResultsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"` // sqlite or postgres
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
}

// Config is the fully resolved runtime configuration.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogFile  string `mapstructure:"logFile"`

	Track    string `mapstructure:"track"`
	AICars   int    `mapstructure:"aiCars"`
	Seed     uint64 `mapstructure:"seed"`
	Headless bool   `mapstructure:"headless"`
	Ticks    int    `mapstructure:"ticks"`
	Demo     bool   `mapstructure:"demo"`

	Window  WindowConfig  `mapstructure:"window"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Results ResultsConfig `mapstructure:"results"`
	Tuning  race.Tuning   `mapstructure:"tuning"`
}

// Load sets defaults and reads the config file from configDir. A missing
// file leaves the defaults in place; a malformed one is an error.
// RACER_* environment variables override both, e.g. RACER_TUNING_LAPTARGET.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("track", "builtin")
	viper.SetDefault("aiCars", 3)
	viper.SetDefault("seed", 1)
	viper.SetDefault("headless", false)
	viper.SetDefault("ticks", 20000)
	viper.SetDefault("demo", false)

	viper.SetDefault("window.scale", 3)
	viper.SetDefault("window.fullscreen", false)
	viper.SetDefault("window.vsync", true)

	viper.SetDefault("audio.enabled", true)
	viper.SetDefault("audio.volume", 0.5)

	viper.SetDefault("results.enabled", true)
	viper.SetDefault("results.driver", "sqlite")
	viper.SetDefault("results.path", "./racer.db")
	viper.SetDefault("results.dsn", "host=localhost port=5432 user=postgres password=postgres dbname=racer sslmode=disable")

	if err := setTuningDefaults(race.DefaultTuning()); err != nil {
		return err
	}

	viper.SetEnvPrefix("RACER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

func setTuningDefaults(tu race.Tuning) error {
	var m map[string]any
	if err := mapstructure.Decode(tu, &m); err != nil {
		return fmt.Errorf("error flattening tuning defaults: %w", err)
	}
	for k, v := range m {
		viper.SetDefault("tuning."+k, v)
	}
	return nil
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"track":     "track",
	"ai-cars":   "aiCars",
	"seed":      "seed",
	"headless":  "headless",
	"ticks":     "ticks",
	"demo":      "demo",
	"laps":      "tuning.lapTarget",
}

// NewFlagSet declares the command line flags. Only flags the user sets
// override the config file.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", ".", "directory containing "+FileName)
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("track", "builtin", "track directory, or builtin for the stock oval")
	fs.Int("ai-cars", 3, "number of computer cars")
	fs.Uint64("seed", 1, "race seed")
	fs.Bool("headless", false, "run without a window and print the result")
	fs.Int("ticks", 20000, "tick limit for headless runs")
	fs.Bool("demo", false, "let the autopilot drive the player car")
	fs.Int("laps", race.DefaultTuning().LapTarget, "laps to win")
	fs.String("export-track", "", "write the selected track to this directory and exit")
	return fs
}

// BindFlags binds the parsed flags into viper.
func BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Get decodes the merged settings.
func Get() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("error decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	if c.AICars < 0 {
		return fmt.Errorf("aiCars must not be negative, got %d", c.AICars)
	}
	if err := c.Tuning.Validate(); err != nil {
		return err
	}
	switch c.Results.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown results driver %q", c.Results.Driver)
	}
	return nil
}
