/*
Package config manages the TOML configuration for jishoserve services.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Search SearchConfig `toml:"search"`
	Cards  CardsConfig  `toml:"cards"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// SearchConfig has the query-time defaults.
type SearchConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	MaxKeys      int  `toml:"max_keys"`
	CommonFirst  bool `toml:"common_first"`
}

// CardsConfig holds card assembly options.
type CardsConfig struct {
	Lang string `toml:"lang"`
}

// CacheConfig sets the per-loader LRU capacities of a dataset session.
type CacheConfig struct {
	Shards     int `toml:"shards"`
	WordChunks int `toml:"word_chunks"`
	LangChunks int `toml:"lang_chunks"`
	NameChunks int `toml:"name_chunks"`
	Lookups    int `toml:"lookups"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MinQuery int `toml:"min_query"`
	MaxQuery int `toml:"max_query"`
}

// Default returns the builtin defaults, used when no config file exists.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultLimit: 20,
			MaxKeys:      250,
			CommonFirst:  false,
		},
		Cards: CardsConfig{Lang: "it"},
		Cache: CacheConfig{
			Shards:     32,
			WordChunks: 4,
			LangChunks: 4,
			NameChunks: 6,
			Lookups:    8,
		},
		Server: ServerConfig{
			MaxLimit: 64,
			MinQuery: 1,
			MaxQuery: 60,
		},
	}
}

// DefaultPath returns the conventional config location,
// ~/.config/jishoserve/config.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "jishoserve", "config.toml"), nil
}

// Load reads config with priority: the custom path when given, then the
// default path, then builtin defaults. A missing file is not an error
// unless the path was explicit; a malformed one always is.
func Load(customPath string) (*Config, error) {
	path := customPath
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			log.Debugf("no config dir available, using defaults: %v", err)
			return Default(), nil
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err != nil {
		if customPath != "" {
			return nil, fmt.Errorf("config file %s: %w", customPath, err)
		}
		log.Debugf("no config file at %s, using defaults", path)
		return Default(), nil
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
