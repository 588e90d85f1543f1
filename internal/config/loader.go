package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
	envPrefix  string
	v          *viper.Viper
}

// NewLoader creates a config loader. An empty configPath searches the
// default locations.
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  "VECFMT",
		v:          viper.New(),
	}
}

// Viper exposes the underlying instance so commands can bind flags to keys.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// ConfigFile returns the file the configuration was read from, if any.
func (l *Loader) ConfigFile() string {
	return l.configPath
}

// Load reads configuration from defaults, file and environment, in that order.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults(DefaultConfig())

	if l.configPath == "" {
		for _, path := range l.defaultPaths() {
			if _, err := os.Stat(path); err == nil {
				l.configPath = path
				break
			}
		}
	}

	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", l.configPath, err)
		}
	}

	// VECFMT_PATHS_INPUT overrides paths.input
	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// defaultPaths returns default config file locations.
func (l *Loader) defaultPaths() []string {
	paths := []string{
		"vecfmt.yaml",
		".vecfmt.yaml",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".config", "vecfmt", "config.yaml"),
		)
	}

	return paths
}

// setDefaults registers every key so AutomaticEnv can see it.
func (l *Loader) setDefaults(cfg *Config) {
	defaults := map[string]interface{}{
		"paths.input":               cfg.Paths.Input,
		"paths.output":              cfg.Paths.Output,
		"paths.reference":           cfg.Paths.Reference,
		"format.entries_per_record": cfg.Format.EntriesPerRecord,
		"format.self_check":         cfg.Format.SelfCheck,
		"format.echo":               cfg.Format.Echo,
		"log.level":                 cfg.Log.Level,
		"log.format":                cfg.Log.Format,
		"log.file":                  cfg.Log.File,
		"log.max_size":              cfg.Log.MaxSize,
		"log.max_backups":           cfg.Log.MaxBackups,
		"log.max_age":               cfg.Log.MaxAge,
		"log.color":                 cfg.Log.Color,
	}
	for k, v := range defaults {
		l.v.SetDefault(k, v)
	}
}

// SaveExample writes an example config file.
func SaveExample(path string) error {
	v := viper.New()
	l := &Loader{v: v}
	l.setDefaults(DefaultConfig())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
