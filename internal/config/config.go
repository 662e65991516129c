package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("mcp-agent version %s, commit %s, built at %s", version, commit, date)
}

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "MCP_AGENT"

var (
	// ErrMissingSource is returned when one of the three required source lists is empty.
	ErrMissingSource = errors.New("missing required source")
	// ErrInvalidConfig is returned when a configuration value cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Sources SourcesConfig `mapstructure:"sources"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	Export  ExportConfig  `mapstructure:"export"`
}

// SourcesConfig lists the three kinds of input aggregated by a run.
type SourcesConfig struct {
	Rag      []string `mapstructure:"rag"`
	MCP      []string `mapstructure:"mcp"`
	Tasklist []string `mapstructure:"tasklist"`
}

// FetchConfig controls how service descriptors are requested.
type FetchConfig struct {
	// Timeout is a per-request duration; empty means the transport default.
	Timeout     string            `mapstructure:"timeout"`
	Concurrency int               `mapstructure:"concurrency"`
	Headers     map[string]string `mapstructure:"headers"`
	UserAgent   string            `mapstructure:"user_agent"`
	// Adjustments is an optional YAML file filtering and rewriting endpoints.
	Adjustments string `mapstructure:"adjustments"`
}

// TimeoutDuration returns the parsed request timeout, zero when unset.
func (f *FetchConfig) TimeoutDuration() time.Duration {
	if f == nil || f.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0
	}
	return d
}

type ServerMode string

const (
	ServerModeSSE   ServerMode = "sse"
	ServerModeSTDIO ServerMode = "stdio"
	ServerModeHTTP  ServerMode = "http"
)

type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	Host    string     `mapstructure:"host"`
	Mode    ServerMode `mapstructure:"mode"`
	Name    string     `mapstructure:"name"`
	Version string     `mapstructure:"version"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

type ExportConfig struct {
	Path string `mapstructure:"path"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"timeout":     "fetch.timeout",
	"concurrency": "fetch.concurrency",
	"adjustments": "fetch.adjustments",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
	"mode":        "server.mode",
	"host":        "server.host",
	"port":        "server.port",
	"export":      "export.path",
}

// sourceFlags are read from the flag set directly, so values are never re-split.
var sourceFlags = map[string]func(*SourcesConfig) *[]string{
	"rag":      func(s *SourcesConfig) *[]string { return &s.Rag },
	"mcp":      func(s *SourcesConfig) *[]string { return &s.MCP },
	"tasklist": func(s *SourcesConfig) *[]string { return &s.Tasklist },
}

// InitFlags registers the configuration flags on the given flag set (without parsing)
func InitFlags(flags *pflag.FlagSet) {
	// Arrays keep every value whole, commas included; repeat the flag for more values
	flags.StringArrayP("rag", "r", nil, "Path to a RAG rule directory (repeatable)")
	flags.StringArrayP("mcp", "m", nil, "URL of an MCP descriptor endpoint (repeatable)")
	flags.StringArrayP("tasklist", "t", nil, "Path to a tasklist file, txt or md (repeatable)")
	flags.String("config", "", "Path to a configuration file")
	flags.String("timeout", "", "Per-request timeout for descriptor fetches (e.g. 10s)")
	flags.Int("concurrency", 1, "Number of descriptors fetched in parallel")
	flags.String("adjustments", "", "Path to a YAML file filtering and rewriting descriptor endpoints")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.String("log-format", "console", "Log format (console|json)")
	flags.String("mode", string(ServerModeSTDIO), "Server mode for serve (stdio|sse|http)")
	flags.String("host", "localhost", "Server host for serve")
	flags.Int("port", 8080, "Server port for serve")
	flags.String("export", "", "Write the aggregated bundle to this YAML file")
}

func setDefaults(v *viper.Viper) {
	// Registered so that MCP_AGENT_SOURCES_* are seen by Unmarshal
	v.SetDefault("sources.rag", []string{})
	v.SetDefault("sources.mcp", []string{})
	v.SetDefault("sources.tasklist", []string{})
	v.SetDefault("fetch.concurrency", 1)
	v.SetDefault("fetch.user_agent", "mcp-agent/"+version)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.mode", string(ServerModeSTDIO))
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.name", "mcp-agent")
	v.SetDefault("server.version", version)
}

// Load merges flags, MCP_AGENT_* environment variables, an optional config file
// and defaults, in that order of precedence.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var configFile string
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if err := readConfigFile(v, configFile); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := applySourceFlags(flags, &config.Sources); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applySourceFlags overrides sources with the flags given on the command line
func applySourceFlags(flags *pflag.FlagSet, sources *SourcesConfig) error {
	for name, field := range sourceFlags {
		if !flags.Changed(name) {
			continue
		}
		values, err := flags.GetStringArray(name)
		if err != nil {
			return err
		}
		*field(sources) = values
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("mcp-agent")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mcp-agent")

	if err := v.ReadInConfig(); err != nil {
		// It's OK if no config file exists, only error if it's another problem
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	if len(c.Sources.Rag) == 0 {
		return fmt.Errorf("%w: at least one --rag directory is required", ErrMissingSource)
	}
	if len(c.Sources.MCP) == 0 {
		return fmt.Errorf("%w: at least one --mcp URL is required", ErrMissingSource)
	}
	if len(c.Sources.Tasklist) == 0 {
		return fmt.Errorf("%w: at least one --tasklist file is required", ErrMissingSource)
	}

	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("%w: fetch.concurrency must be at least 1, got %d", ErrInvalidConfig, c.Fetch.Concurrency)
	}
	if c.Fetch.Timeout != "" {
		d, err := time.ParseDuration(c.Fetch.Timeout)
		if err != nil {
			return fmt.Errorf("%w: fetch.timeout: %v", ErrInvalidConfig, err)
		}
		if d < 0 {
			return fmt.Errorf("%w: fetch.timeout must not be negative", ErrInvalidConfig)
		}
	}

	switch c.Server.Mode {
	case ServerModeSSE, ServerModeSTDIO, ServerModeHTTP:
	default:
		return fmt.Errorf("%w: unsupported server mode: %s", ErrInvalidConfig, c.Server.Mode)
	}
	return nil
}
