package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gzhole/dlprotocol/internal/backup"
)

const (
	DefaultConfigDir  = ".dlprotocol"
	DefaultConfigFile = "config.yaml"
	DefaultAuditFile  = "audit.jsonl"

	DefaultInput = "Raw sensory data"
	DefaultGoal  = "Solve complex problem"
	DefaultDepth = 5

	MinDepth = 1
	MaxDepth = 10
)

type Config struct {
	// ConfigDir is where the default config file and audit log live. Not read from YAML.
	ConfigDir string `yaml:"-"`
	// Path is the config file that was loaded, if any.
	Path string `yaml:"-"`

	BackupDir string   `yaml:"backup_dir"`
	AuditLog  string   `yaml:"audit_log"`
	LogLevel  string   `yaml:"log_level"`
	Defaults  Defaults `yaml:"defaults"`
}

// Defaults are the values the shell falls back to on empty input.
type Defaults struct {
	Input string `yaml:"input"`
	Goal  string `yaml:"goal"`
	Depth int    `yaml:"depth"`
}

// Default returns the built-in configuration.
func Default() *Config {
	configDir := defaultConfigDir()
	return &Config{
		ConfigDir: configDir,
		BackupDir: backup.DefaultDir,
		AuditLog:  filepath.Join(configDir, DefaultAuditFile),
		LogLevel:  "info",
		Defaults: Defaults{
			Input: DefaultInput,
			Goal:  DefaultGoal,
			Depth: DefaultDepth,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path means the default config file, which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.ConfigDir, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Path = path
	cfg.Validate()

	return cfg, nil
}

// Validate fills in blanks and resets out-of-range values.
func (c *Config) Validate() {
	if c.BackupDir == "" {
		c.BackupDir = backup.DefaultDir
	}
	c.BackupDir = expandHome(c.BackupDir)
	c.AuditLog = expandHome(c.AuditLog)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if strings.TrimSpace(c.Defaults.Input) == "" {
		c.Defaults.Input = DefaultInput
	}
	if strings.TrimSpace(c.Defaults.Goal) == "" {
		c.Defaults.Goal = DefaultGoal
	}
	if c.Defaults.Depth < MinDepth || c.Defaults.Depth > MaxDepth {
		c.Defaults.Depth = DefaultDepth
	}
}

// EnsureConfigDir creates the config directory if it is missing.
func (c *Config) EnsureConfigDir() error {
	return ensureDir(c.ConfigDir)
}

// EnsureAuditDir creates the directory holding the audit log. A log inside
// the config directory goes through EnsureConfigDir.
func (c *Config) EnsureAuditDir() error {
	if c.AuditLog == "" {
		return nil
	}
	dir := filepath.Dir(c.AuditLog)
	if filepath.Clean(dir) == filepath.Clean(c.ConfigDir) {
		return c.EnsureConfigDir()
	}
	return ensureDir(dir)
}

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(homeDir, DefaultConfigDir)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
