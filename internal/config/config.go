/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents application configuration.
type Config struct {
	// Listener
	Host            string // Address the HTTP server binds to
	Port            int    // First port tried by the listener probe
	MaxPortAttempts int    // Number of consecutive ports tried

	// Snapshot cache
	CacheWindow time.Duration // Maximum age of a served snapshot
	HistorySize int           // Temperature history entries kept

	// Filters
	IncludeDisks    []string // Disk devices to monitor (empty = all)
	ExcludeDisks    []string // Disk devices to exclude
	IncludeNetworks []string // Network interfaces to monitor (empty = all)
	ExcludeNetworks []string // Network interfaces to exclude

	// Logging
	LogLevel string // Log level: debug, info, warn, error
	LogFile  string // Log file path (empty = stdout)

	// Warnings collected while loading, logged once the logger exists.
	Warnings []string
}

// Default configuration values.
const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 9527
	DefaultMaxPortAttempts = 100
	DefaultCacheWindow     = 1000 * time.Millisecond
	DefaultHistorySize     = 60
	DefaultLogLevel        = "info"

	// EnvPrefix namespaces every setting except PORT in the environment.
	EnvPrefix = "UNOMON"
)

// Configuration keys, shared by flags, environment and config file.
const (
	KeyConfig          = "config"
	KeyHost            = "host"
	KeyPort            = "port"
	KeyMaxPortAttempts = "max-port-attempts"
	KeyCacheWindow     = "cache-window"
	KeyHistorySize     = "history-size"
	KeyIncludeDisks    = "include-disks"
	KeyExcludeDisks    = "exclude-disks"
	KeyIncludeNetworks = "include-networks"
	KeyExcludeNetworks = "exclude-networks"
	KeyLogLevel        = "log-level"
	KeyLogFile         = "log-file"
)

// RegisterFlags defines the serve flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "Optional config file (yaml, toml or json)")
	fs.String(KeyHost, DefaultHost, "HTTP server listen address")
	fs.IntP(KeyPort, "p", DefaultPort, "First port to try (env PORT)")
	fs.Int(KeyMaxPortAttempts, DefaultMaxPortAttempts, "Number of consecutive ports to try")
	fs.Duration(KeyCacheWindow, DefaultCacheWindow, "How long a snapshot is reused before recomputing")
	fs.Int(KeyHistorySize, DefaultHistorySize, "Temperature history entries to keep")
	fs.String(KeyIncludeDisks, "", "Comma-separated list of disk devices to monitor (empty = all)")
	fs.String(KeyExcludeDisks, "", "Comma-separated list of disk devices to exclude")
	fs.String(KeyIncludeNetworks, "", "Comma-separated list of network interfaces to monitor (empty = all)")
	fs.String(KeyExcludeNetworks, "", "Comma-separated list of network interfaces to exclude")
}

// Load resolves configuration with the precedence flag > environment >
// config file > default. PORT is read unprefixed; every other key may be
// set through UNOMON_<KEY> with dashes replaced by underscores.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := v.BindEnv(KeyPort, "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind PORT: %w", err)
	}

	v.SetDefault(KeyHost, DefaultHost)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyMaxPortAttempts, DefaultMaxPortAttempts)
	v.SetDefault(KeyCacheWindow, DefaultCacheWindow)
	v.SetDefault(KeyHistorySize, DefaultHistorySize)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Host:            v.GetString(KeyHost),
		MaxPortAttempts: v.GetInt(KeyMaxPortAttempts),
		CacheWindow:     v.GetDuration(KeyCacheWindow),
		HistorySize:     v.GetInt(KeyHistorySize),
		IncludeDisks:    parseCommaSeparated(v.GetString(KeyIncludeDisks)),
		ExcludeDisks:    parseCommaSeparated(v.GetString(KeyExcludeDisks)),
		IncludeNetworks: parseCommaSeparated(v.GetString(KeyIncludeNetworks)),
		ExcludeNetworks: parseCommaSeparated(v.GetString(KeyExcludeNetworks)),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFile:         v.GetString(KeyLogFile),
	}

	// An unparsable port falls back to the default instead of aborting.
	port, err := parsePort(v.GetString(KeyPort))
	if err != nil {
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("ignoring invalid port %q, using %d: %v", v.GetString(KeyPort), DefaultPort, err))
		port = DefaultPort
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

// parseCommaSeparated parses a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ParseCommaSeparated is the exported version of parseCommaSeparated.
func ParseCommaSeparated(s string) []string {
	return parseCommaSeparated(s)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.MaxPortAttempts < 1 {
		return errors.New("max port attempts must be at least 1")
	}

	if c.CacheWindow <= 0 {
		return errors.New("cache window must be positive")
	}

	if c.CacheWindow > 1*time.Hour {
		return errors.New("cache window must not exceed 1 hour")
	}

	if c.HistorySize < 1 {
		return errors.New("history size must be at least 1")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Host=%s, Port=%d, MaxPortAttempts=%d, CacheWindow=%v, HistorySize=%d}",
		c.Host, c.Port, c.MaxPortAttempts, c.CacheWindow, c.HistorySize)
}
