// Package config provides configuration management for forge using Viper
// for loading from files, environment variables and command-line flags.
//
// The configuration is read from .forge.yml (or the file named by
// FORGE_CONFIG_FILE / --config), with FORGE_ prefixed environment overrides.
// It covers the theme creator server, the draft file the server and CLI
// start from, and logging.
package config

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/conneroisu/forge/internal/clipboard"
	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/logging"
	"github.com/conneroisu/forge/internal/theme"
)

// Defaults applied when a value is not set.
const (
	DefaultHost      = "localhost"
	DefaultPort      = 7331
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	maxCopyReset     = time.Minute
)

type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Theme  ThemeConfig  `yaml:"theme" mapstructure:"theme"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	Host           string   `yaml:"host" mapstructure:"host"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// Address returns host:port for net/http.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type ThemeConfig struct {
	// Draft is an optional YAML or TOML draft file loaded at startup.
	Draft string `yaml:"draft" mapstructure:"draft"`
	// Watch reloads Draft when it changes.
	Watch bool `yaml:"watch" mapstructure:"watch"`
	// CopyReset is how long the copied indicator stays on.
	CopyReset time.Duration `yaml:"copy_reset" mapstructure:"copy_reset"`
	// Format is the default snippet format.
	Format string `yaml:"format" mapstructure:"format"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Logger builds a logger from the log section.
func (l LogConfig) Logger() *logging.ForgeLogger {
	cfg := logging.DefaultConfig()
	if level, err := logging.ParseLevel(l.Level); err == nil {
		cfg.Level = level
	}
	cfg.Format = l.Format
	return logging.NewLogger(cfg)
}

// Load reads the configuration from viper, applies defaults and validates.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "cannot decode configuration: "+err.Error())
	}

	if config.Server.Host == "" {
		config.Server.Host = DefaultHost
	}
	if !viper.IsSet("server.port") {
		config.Server.Port = DefaultPort
	}

	// Handle allowed origins set via viper (workaround for viper slice handling)
	if viper.IsSet("server.allowed_origins") && len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = viper.GetStringSlice("server.allowed_origins")
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = defaultOrigins(config.Server)
	}

	if config.Theme.CopyReset == 0 {
		config.Theme.CopyReset = clipboard.DefaultResetDelay
	}
	if config.Theme.Format == "" {
		config.Theme.Format = string(theme.FormatJSX)
	}

	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}
	if config.Log.Format == "" {
		config.Log.Format = DefaultLogFormat
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func defaultOrigins(s ServerConfig) []string {
	port := strconv.Itoa(s.Port)
	return []string{
		"http://localhost:" + port,
		"http://127.0.0.1:" + port,
	}
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := validateThemeConfig(&config.Theme); err != nil {
		return fmt.Errorf("theme config: %w", err)
	}
	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return configError("port %d is not in valid range 0-65535", config.Port)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", " "}
	for _, char := range dangerousChars {
		if strings.Contains(config.Host, char) {
			return configError("host contains dangerous character: %q", char)
		}
	}

	for _, origin := range config.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return configError("allowed origin %q must be an http(s) origin", origin)
		}
	}

	return nil
}

func validateThemeConfig(config *ThemeConfig) error {
	if config.Draft != "" {
		if err := validatePath(config.Draft); err != nil {
			return fmt.Errorf("invalid draft path '%s': %w", config.Draft, err)
		}
		switch strings.ToLower(filepath.Ext(config.Draft)) {
		case ".yml", ".yaml", ".toml":
		default:
			return configError("draft %q must be a .yml, .yaml or .toml file", config.Draft)
		}
	}
	if config.Watch && config.Draft == "" {
		return configError("watch requires a draft file")
	}

	if config.CopyReset < 0 || config.CopyReset > maxCopyReset {
		return configError("copy_reset %s is not in valid range 0-%s", config.CopyReset, maxCopyReset)
	}

	if _, err := theme.ParseFormat(config.Format); err != nil {
		return err
	}
	return nil
}

func validateLogConfig(config *LogConfig) error {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		return configError("%v", err)
	}
	switch config.Format {
	case "text", "json":
		return nil
	default:
		return configError("log format %q must be text or json", config.Format)
	}
}

// validatePath validates a file path for security
func validatePath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return configError("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return configError("path contains dangerous character: %s", char)
		}
	}

	return nil
}

func configError(format string, args ...interface{}) error {
	return errors.NewConfigError(errors.ErrCodeConfigInvalid, fmt.Sprintf(format, args...))
}
