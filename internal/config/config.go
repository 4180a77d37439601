// Package config loads pipeline configuration from file, environment, and
// defaults, with optional hot-reloading.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config enumerates every tunable of the pipeline. There is no global
// state: each component receives the values it needs at construction.
type Config struct {
	// Inference endpoint
	EndpointURL    string  `mapstructure:"endpoint_url" yaml:"endpoint_url"`
	Model          string  `mapstructure:"model" yaml:"model"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	TopP           float64 `mapstructure:"top_p" yaml:"top_p"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`

	// Batch pacing
	InterCallDelaySeconds int `mapstructure:"inter_call_delay_seconds" yaml:"inter_call_delay_seconds"`

	// Paths. Empty values fall back to the home directory layout.
	DBPath     string `mapstructure:"db_path" yaml:"db_path"`
	Index1Dir  string `mapstructure:"index1_dir" yaml:"index1_dir"`
	Index2Dir  string `mapstructure:"index2_dir" yaml:"index2_dir"`
	ResultsDir string `mapstructure:"results_dir" yaml:"results_dir"`

	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// Timeout returns the per-call network timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// InterCallDelay returns the fixed sleep between consecutive files.
func (c *Config) InterCallDelay() time.Duration {
	return time.Duration(c.InterCallDelaySeconds) * time.Second
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a new config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("endpoint_url", defaults.EndpointURL)
	viper.SetDefault("model", defaults.Model)
	viper.SetDefault("temperature", defaults.Temperature)
	viper.SetDefault("top_p", defaults.TopP)
	viper.SetDefault("timeout_seconds", defaults.TimeoutSeconds)
	viper.SetDefault("inter_call_delay_seconds", defaults.InterCallDelaySeconds)
	viper.SetDefault("db_path", defaults.DBPath)
	viper.SetDefault("index1_dir", defaults.Index1Dir)
	viper.SetDefault("index2_dir", defaults.Index2Dir)
	viper.SetDefault("results_dir", defaults.ResultsDir)
	viper.SetDefault("debug", defaults.Debug)

	// Environment variables with ALMIRAH_ prefix
	viper.SetEnvPrefix("ALMIRAH")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.almirah")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Endpoint and path values may carry ${ENV_VAR} references.
	cfg.EndpointURL = ResolveEnvVars(cfg.EndpointURL)
	cfg.Model = ResolveEnvVars(cfg.Model)
	cfg.DBPath = ResolveEnvVars(cfg.DBPath)
	cfg.Index1Dir = ResolveEnvVars(cfg.Index1Dir)
	cfg.Index2Dir = ResolveEnvVars(cfg.Index2Dir)
	cfg.ResultsDir = ResolveEnvVars(cfg.ResultsDir)

	return &cfg, nil
}

// ResolveEnvVars replaces ${VAR_NAME} patterns in the value with the
// corresponding environment variable.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}
