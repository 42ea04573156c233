package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/writeit-cli/internal/utils"
)

const defaultDirName = ".writeit"

// Global configuration structure. It is loaded once and passed explicitly
// to the API client and editor session.
type Global struct {
	APIBase        string `mapstructure:"api_base" yaml:"api_base"`
	UserID         int64  `mapstructure:"user_id" yaml:"user_id"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	StateDir       string `mapstructure:"state_dir" yaml:"state_dir"`
	Theme          string `mapstructure:"theme" yaml:"theme"`
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	DefaultType    string `mapstructure:"default_type" yaml:"default_type"`
}

// DefaultDir is ~/.writeit.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.writeit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func newViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("api_base", "http://localhost:8080")
	v.SetDefault("user_id", 1)
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("state_dir", "")
	v.SetDefault("theme", "light")
	v.SetDefault("log_level", "info")
	v.SetDefault("default_type", "ARTICLE")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()
	return v, nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including ./.env) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v, err := newViper(cfgFile)
	if err != nil {
		return nil, err
	}
	v.SetEnvPrefix("WRITEIT")
	v.AutomaticEnv()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.StateDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		c.StateDir = dir
	} else {
		dir, err := utils.ExpandHome(c.StateDir)
		if err != nil {
			return nil, err
		}
		c.StateDir = dir
	}
	return &c, nil
}

// LoadFile reads only the config file over defaults. Environment, .env
// and flag overrides are not applied and state_dir is left unresolved, so
// the result is safe to edit and Save back.
func LoadFile(cfgFile string) (*Global, error) {
	v, err := newViper(cfgFile)
	if err != nil {
		return nil, err
	}
	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
