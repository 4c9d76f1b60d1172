// ABOUTME: Viper-backed configuration with defaults, env, flags, and hot reload
// ABOUTME: Subscribers are notified through an event bus when the file changes

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mauromedda/postdash/internal/eventbus"
)

// EnvPrefix prefixes every environment override, e.g. POSTDASH_FETCH_BASE_URL.
const EnvPrefix = "POSTDASH"

// Config holds all settings.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Log     LogConfig     `mapstructure:"log"`
	Keys    KeysConfig    `mapstructure:"keys"`
}

type StorageConfig struct {
	SQLitePath string `mapstructure:"sqlite_path"`
}

type FetchConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	Limit              int    `mapstructure:"limit"`
	Workers            int    `mapstructure:"workers"`
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
	UserAgent          string `mapstructure:"user_agent"`
}

// HTTPTimeout returns the per-request timeout.
func (f FetchConfig) HTTPTimeout() time.Duration {
	return time.Duration(f.HTTPTimeoutSeconds) * time.Second
}

type TUIConfig struct {
	RefreshRateMs int  `mapstructure:"refresh_rate_ms"`
	ModalWidth    int  `mapstructure:"modal_width"`
	ModalHeight   int  `mapstructure:"modal_height"`
	Borderless    bool `mapstructure:"borderless"`
}

// RefreshInterval returns the render loop period.
func (t TUIConfig) RefreshInterval() time.Duration {
	return time.Duration(t.RefreshRateMs) * time.Millisecond
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"`
}

type KeysConfig struct {
	Path string `mapstructure:"path"`
}

// Options configures NewManager.
type Options struct {
	// ConfigFile is an explicit config path; it must exist. When empty the
	// global config file is used if present.
	ConfigFile string
	// Flags, when set, are bound over file and env values.
	Flags *pflag.FlagSet
	// Version is used in the default user agent.
	Version string
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":       "storage.sqlite_path",
	"base-url": "fetch.base_url",
	"debug":    "log.debug",
}

// Manager handles config loading and hot-reload.
type Manager struct {
	mu      sync.RWMutex
	config  Config
	viper   *viper.Viper
	file    string
	changes *eventbus.Bus[Config]
}

// NewManager loads configuration from defaults, the config file, env and flags.
func NewManager(opts Options) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, opts.Version)

	if opts.Flags != nil {
		for name, cfgKey := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(cfgKey, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	file := opts.ConfigFile
	if file == "" {
		if _, err := os.Stat(GlobalConfigFile()); err == nil {
			file = GlobalConfigFile()
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &Manager{
		config:  cfg,
		viper:   v,
		file:    file,
		changes: eventbus.New[Config](),
	}, nil
}

func setDefaults(v *viper.Viper, version string) {
	if version == "" {
		version = "dev"
	}
	v.SetDefault("storage.sqlite_path", DefaultDBPath())
	v.SetDefault("fetch.base_url", "https://mastodon.social")
	v.SetDefault("fetch.limit", 100)
	v.SetDefault("fetch.workers", 2)
	v.SetDefault("fetch.http_timeout_seconds", 30)
	v.SetDefault("fetch.user_agent", "postdash/"+version)
	v.SetDefault("tui.refresh_rate_ms", 100)
	v.SetDefault("tui.modal_width", 23)
	v.SetDefault("tui.modal_height", 4)
	v.SetDefault("tui.borderless", false)
	v.SetDefault("log.path", DefaultLogPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.debug", false)
	v.SetDefault("keys.path", GlobalKeybindingsFile())
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Storage.SQLitePath = ExpandHome(cfg.Storage.SQLitePath)
	cfg.Log.Path = ExpandHome(cfg.Log.Path)
	cfg.Keys.Path = ExpandHome(cfg.Keys.Path)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the dashboard cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Storage.SQLitePath == "" {
		errs = append(errs, errors.New("storage.sqlite_path is empty"))
	}
	if c.Fetch.BaseURL == "" {
		errs = append(errs, errors.New("fetch.base_url is empty"))
	}
	if c.Fetch.Limit <= 0 {
		errs = append(errs, fmt.Errorf("fetch.limit must be positive, got %d", c.Fetch.Limit))
	}
	if c.Fetch.Workers <= 0 {
		errs = append(errs, fmt.Errorf("fetch.workers must be positive, got %d", c.Fetch.Workers))
	}
	if c.Fetch.HTTPTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("fetch.http_timeout_seconds must not be negative, got %d", c.Fetch.HTTPTimeoutSeconds))
	}
	if c.TUI.RefreshRateMs <= 0 {
		errs = append(errs, fmt.Errorf("tui.refresh_rate_ms must be positive, got %d", c.TUI.RefreshRateMs))
	}
	if c.TUI.ModalWidth < 3 || c.TUI.ModalHeight < 2 {
		errs = append(errs, fmt.Errorf("tui modal size %dx%d is too small", c.TUI.ModalWidth, c.TUI.ModalHeight))
	}
	return errors.Join(errs...)
}

// Get returns a copy of the current config.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// File returns the config file in use, or "" when running on defaults.
func (m *Manager) File() string {
	return m.file
}

// OnChange registers fn to receive the new config after each reload.
func (m *Manager) OnChange(fn func(Config)) (unsubscribe func()) {
	return m.changes.Subscribe(fn)
}

// Watch starts reloading on file changes. Without a config file it does
// nothing.
func (m *Manager) Watch() {
	if m.file == "" {
		return
	}
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info().Str("file", e.Name).Msg("config file changed, reloading")
		if err := m.Reload(); err != nil {
			log.Warn().Err(err).Msg("config reload rejected")
		}
	})
	m.viper.WatchConfig()
}

// Reload re-reads the config file. Invalid files leave the current config in
// place.
func (m *Manager) Reload() error {
	if m.file != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", m.file, err)
		}
	}
	cfg, err := decode(m.viper)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	m.changes.Publish(cfg)
	return nil
}
