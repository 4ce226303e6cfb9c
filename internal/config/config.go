// Package config loads IconForge settings from the environment, an optional
// workspace file and LSP initialization options, in that order of precedence
// (later sources win).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace settings file looked up in the root folder.
const FileName = ".iconforge.yml"

// DefaultLanguages lists the language IDs the features apply to.
var DefaultLanguages = []string{
	"html", "vue", "svelte", "templ",
	"javascript", "typescript", "javascriptreact", "typescriptreact",
}

// Config holds server and tool settings.
type Config struct {
	DataPath       string        `env:"ICONFORGE_DATA"            envDefault:"data/iconforge.data.json" yaml:"data"           json:"dataPath"`
	Debounce       time.Duration `env:"ICONFORGE_DEBOUNCE"        envDefault:"500ms"                    yaml:"debounce"       json:"-"`
	Languages      []string      `env:"ICONFORGE_LANGUAGES"       envSeparator:","                      yaml:"languages"      json:"languages"`
	PreviewSize    int           `env:"ICONFORGE_PREVIEW_SIZE"    envDefault:"64"                       yaml:"previewSize"    json:"previewSize"`
	PreviewPadding int           `env:"ICONFORGE_PREVIEW_PADDING" envDefault:"8"                        yaml:"previewPadding" json:"previewPadding"`
	Diagnostics    bool          `env:"ICONFORGE_DIAGNOSTICS"     envDefault:"true"                     yaml:"diagnostics"    json:"diagnostics"`
	LogPath        string        `env:"ICONFORGE_LOG"                                                   yaml:"log"            json:"-"`
	LogLevel       string        `env:"ICONFORGE_LOG_LEVEL"       envDefault:"info"                     yaml:"logLevel"       json:"logLevel"`
}

// FromEnv returns the defaults overlaid with ICONFORGE_* environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = append([]string(nil), DefaultLanguages...)
	}
	return cfg, nil
}

// MergeFile overlays the YAML settings file at path. A missing file is not an
// error.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// initOptions is the JSON shape clients send as initializationOptions.
// Debounce is a duration string ("250ms") since JSON has no duration type.
type initOptions struct {
	Debounce string `json:"debounce"`
}

// MergeJSON overlays LSP initializationOptions. Empty input is ignored.
func (c *Config) MergeJSON(raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse initialization options: %w", err)
	}
	var opts initOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return fmt.Errorf("parse initialization options: %w", err)
	}
	if opts.Debounce != "" {
		d, err := time.ParseDuration(opts.Debounce)
		if err != nil {
			return fmt.Errorf("parse debounce %q: %w", opts.Debounce, err)
		}
		c.Debounce = d
	}
	return nil
}

// ResolveDataPath makes a relative DataPath absolute against root.
func (c *Config) ResolveDataPath(root string) {
	if c.DataPath == "" || filepath.IsAbs(c.DataPath) || root == "" {
		return
	}
	c.DataPath = filepath.Join(root, c.DataPath)
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data path is required")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	if c.PreviewSize < 0 || c.PreviewPadding < 0 {
		return errors.New("preview size and padding must not be negative")
	}
	return nil
}

// Load reads the environment then the settings file in root, if any.
func Load(root string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	if root != "" {
		if err := cfg.MergeFile(filepath.Join(root, FileName)); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
