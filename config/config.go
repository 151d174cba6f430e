package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/PilPara/Assembler/parser"
)

// Config holds the deployment-tunable limits of the assembler. A fresh
// install needs none of this — DefaultConfig matches spec.md §6's fixed
// values exactly — but a variant ISA can override any of it via TOML.
type Config struct {
	Limits struct {
		MaxLineLen   int `toml:"max_line_len"`
		MaxLabelLen  int `toml:"max_label_len"`
		InitialIC    int `toml:"initial_ic"`
		MinImmediate int `toml:"min_immediate"`
		MaxImmediate int `toml:"max_immediate"`
	} `toml:"limits"`

	Output struct {
		Directory       string `toml:"directory"`
		IntermediateExt string `toml:"intermediate_ext"`
		ObjectExt       string `toml:"object_ext"`
		EntryExt        string `toml:"entry_ext"`
		ExternExt       string `toml:"extern_ext"`
	} `toml:"output"`

	Logging struct {
		Verbose bool `toml:"verbose"`
	} `toml:"logging"`
}

// DefaultConfig returns spec.md §6's fixed limits and the conventional
// .ob/.ent/.ext output extensions.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Limits.MaxLineLen = parser.MaxLineLen
	cfg.Limits.MaxLabelLen = parser.MaxLabelLen
	cfg.Limits.InitialIC = parser.InitialIC
	cfg.Limits.MinImmediate = parser.MinImmediate
	cfg.Limits.MaxImmediate = parser.MaxImmediate

	cfg.Output.Directory = "."
	cfg.Output.IntermediateExt = ".am"
	cfg.Output.ObjectExt = ".ob"
	cfg.Output.EntryExt = ".ent"
	cfg.Output.ExternExt = ".ext"

	cfg.Logging.Verbose = false

	return cfg
}

// ParserLimits converts the deployment-tunable ISA limits into the
// parser.Limits value the lexer, preprocessor, and parser validate against.
func (c *Config) ParserLimits() parser.Limits {
	return parser.Limits{
		MaxLineLen:   c.Limits.MaxLineLen,
		MaxLabelLen:  c.Limits.MaxLabelLen,
		MinImmediate: c.Limits.MinImmediate,
		MaxImmediate: c.Limits.MaxImmediate,
	}
}

// GetConfigPath returns the platform-specific default config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "passembler")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "passembler")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file, or default limits
// if it doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from path, falling back to DefaultConfig if
// the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user-supplied config path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
