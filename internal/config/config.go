package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerURL    string   `mapstructure:"server_url" yaml:"server_url"`
	CallbackAddr string   `mapstructure:"callback_addr" yaml:"callback_addr"`
	Debug        bool     `mapstructure:"debug" yaml:"debug"`
	UI           UIConfig `mapstructure:"ui" yaml:"ui"`
}

type UIConfig struct {
	Compact bool   `mapstructure:"compact" yaml:"compact"`
	Color   string `mapstructure:"color" yaml:"color"` // auto, always, never
}

func Load(path string) (*Config, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func defaults() *Config {
	return &Config{
		ServerURL:    "http://localhost:8000",
		CallbackAddr: "127.0.0.1:4242",
		Debug:        false,
		UI: UIConfig{
			Compact: false,
			Color:   "auto",
		},
	}
}

// DataDir is where the CLI keeps its config, session cookies, and saved
// filter preferences.
func DataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".projects42"
	}
	return filepath.Join(homeDir, ".projects42")
}

// CookiePath is the session cookie jar location.
func CookiePath() string {
	return filepath.Join(DataDir(), "cookies.json")
}

func DiscoverPath(flagPath string) string {
	if flagPath != "" {
		if _, err := os.Stat(flagPath); err == nil {
			return flagPath
		}
	}

	if envPath := os.Getenv("PROJECTS42_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	return filepath.Join(DataDir(), "config.yaml")
}

func LoadWithEnv(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("PROJECTS42")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("server_url")
	_ = v.BindEnv("callback_addr")
	_ = v.BindEnv("debug")
	_ = v.BindEnv("ui.compact")
	_ = v.BindEnv("ui.color")

	_, err := os.Stat(path)
	if err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaults().ServerURL
	}
	if cfg.CallbackAddr == "" {
		cfg.CallbackAddr = defaults().CallbackAddr
	}
	if cfg.UI.Color == "" {
		cfg.UI = defaults().UI
	}

	return cfg, nil
}

// ShouldUseColor determines if color output should be used.
func ShouldUseColor(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch viper.GetString("ui.color") {
	case "never":
		return false
	case "always":
		return true
	default:
		return true
	}
}

// ShouldUseCompact determines if compact output should be used.
func ShouldUseCompact() bool {
	return viper.GetBool("ui.compact")
}
