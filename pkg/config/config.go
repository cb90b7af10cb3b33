package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/invmang"
	ConfigFileName    = "invmang.yml"
)

// ValidLogLevels is the list of accepted log_level values
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// InventoryConfig holds all inventory server configuration settings
type InventoryConfig struct {
	// BindAddress is the interface the HTTP server listens on
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the HTTP listen port
	Port int `yaml:"port" json:"port"`

	// ReadTimeout is the HTTP read timeout in seconds
	ReadTimeout int `yaml:"read_timeout" json:"read_timeout"`

	// WriteTimeout is the HTTP write timeout in seconds
	WriteTimeout int `yaml:"write_timeout" json:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown in seconds
	ShutdownTimeout int `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// AuditEnabled enables the write-path audit log
	AuditEnabled *bool `yaml:"audit_enabled" json:"audit_enabled"`

	// LogLevel controls SQL and server log verbosity
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *InventoryConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *InventoryConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// Default returns the built-in configuration without reading file or environment
func Default() *InventoryConfig {
	return newDefault()
}

func newDefault() *InventoryConfig {
	auditEnabled := true
	return &InventoryConfig{
		BindAddress:     "0.0.0.0",
		Port:            18080,
		ReadTimeout:     15,
		WriteTimeout:    15,
		ShutdownTimeout: 10,
		AuditEnabled:    &auditEnabled,
		LogLevel:        "info",
		sources:         make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*InventoryConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("INVMANG_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig InventoryConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "read_timeout", "write_timeout",
		"shutdown_timeout", "audit_enabled", "log_level",
	}
}

func (c *InventoryConfig) applyFileConfig(file *InventoryConfig) {
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = "file"
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = "file"
	}
	if file.ReadTimeout != 0 {
		c.ReadTimeout = file.ReadTimeout
		c.sources["read_timeout"] = "file"
	}
	if file.WriteTimeout != 0 {
		c.WriteTimeout = file.WriteTimeout
		c.sources["write_timeout"] = "file"
	}
	if file.ShutdownTimeout != 0 {
		c.ShutdownTimeout = file.ShutdownTimeout
		c.sources["shutdown_timeout"] = "file"
	}
	if file.AuditEnabled != nil {
		enabled := *file.AuditEnabled
		c.AuditEnabled = &enabled
		c.sources["audit_enabled"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
}

func (c *InventoryConfig) applyEnvConfig() {
	if val := os.Getenv("INVMANG_BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "environment"
	}
	if val := firstEnv("INVMANG_PORT", "PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.Port = i
			c.sources["port"] = "environment"
		}
	}
	if val := os.Getenv("INVMANG_READ_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ReadTimeout = i
			c.sources["read_timeout"] = "environment"
		}
	}
	if val := os.Getenv("INVMANG_WRITE_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.WriteTimeout = i
			c.sources["write_timeout"] = "environment"
		}
	}
	if val := os.Getenv("INVMANG_SHUTDOWN_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ShutdownTimeout = i
			c.sources["shutdown_timeout"] = "environment"
		}
	}
	if val := os.Getenv("INVMANG_AUDIT_ENABLED"); val != "" {
		enabled := val != "false" && val != "0" && val != "no"
		c.AuditEnabled = &enabled
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("INVMANG_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// ConfigFilePath returns the path to the config file
func (c *InventoryConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *InventoryConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Addr returns the host:port the server listens on
func (c *InventoryConfig) Addr() string {
	return c.BindAddress + ":" + strconv.Itoa(c.Port)
}

// ReadTimeoutDuration returns the read timeout as a duration
func (c *InventoryConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns the write timeout as a duration
func (c *InventoryConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// ShutdownTimeoutDuration returns the shutdown timeout as a duration
func (c *InventoryConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// IsAuditEnabled reports whether write-path auditing is on
func (c *InventoryConfig) IsAuditEnabled() bool {
	return c.AuditEnabled == nil || *c.AuditEnabled
}

// Validate validates the configuration
func (c *InventoryConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read_timeout: %d", c.ReadTimeout)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("invalid write_timeout: %d", c.WriteTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown_timeout: %d", c.ShutdownTimeout)
	}

	valid := false
	for _, level := range ValidLogLevels {
		if c.LogLevel == level {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *InventoryConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "read_timeout", Value: strconv.Itoa(c.ReadTimeout), Source: c.Source("read_timeout")},
		{Name: "write_timeout", Value: strconv.Itoa(c.WriteTimeout), Source: c.Source("write_timeout")},
		{Name: "shutdown_timeout", Value: strconv.Itoa(c.ShutdownTimeout), Source: c.Source("shutdown_timeout")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.IsAuditEnabled()), Source: c.Source("audit_enabled")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *InventoryConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-20s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-20s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-20s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *InventoryConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
