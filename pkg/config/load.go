package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// relConfigPath is the config file location relative to the XDG config dirs.
const relConfigPath = "hctm/config.toml"

// Overrides carries command-line settings applied after file and
// environment values.
type Overrides struct {
	AssumeYes      bool
	LenientArchive bool
}

// fileConfig is the TOML representation of the config file. Empty values
// leave the defaults in place.
type fileConfig struct {
	ConfigDir      string   `toml:"config_dir"`
	ThemesDir      string   `toml:"themes_dir"`
	MetaFile       string   `toml:"meta_file"`
	AllowedFiles   []string `toml:"allowed_files"`
	Client         string   `toml:"client"`
	AssumeYes      bool     `toml:"assume_yes"`
	LenientArchive bool     `toml:"lenient_archive"`
	ProcessSource  string   `toml:"process_source"`
}

// Load builds the configuration. When path is empty the XDG config
// directories are searched for hctm/config.toml; if none exists the
// defaults are used.
func Load(path string, ov Overrides) (Config, error) {
	if path == "" {
		if found, err := xdg.SearchConfigFile(relConfigPath); err == nil {
			path = found
		}
	}

	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return Config{}, err
		}
	} else {
		applyEnvOverrides(&cfg)
	}

	cfg.AssumeYes = cfg.AssumeYes || ov.AssumeYes
	cfg.LenientArchive = cfg.LenientArchive || ov.LenientArchive

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return Config{}, err
	}
	defer f.Close()
	return LoadFromReader(f, Default())
}

// LoadFromReader decodes TOML from r on top of base.
func LoadFromReader(r io.Reader, base Config) (Config, error) {
	var fc fileConfig
	if _, err := toml.NewDecoder(r).Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg := base
	if fc.ConfigDir != "" {
		cfg = rebase(cfg, fc.ConfigDir)
	}
	if fc.ThemesDir != "" {
		cfg.ThemesDir = fc.ThemesDir
		cfg.MetaFile = filepath.Join(fc.ThemesDir, MetaFileName)
	}
	if fc.MetaFile != "" {
		cfg.MetaFile = fc.MetaFile
	}
	if len(fc.AllowedFiles) > 0 {
		cfg.AllowedFiles = append([]string(nil), fc.AllowedFiles...)
	}
	if fc.Client != "" {
		cfg.Client = fc.Client
	}
	if fc.ProcessSource != "" {
		cfg.ProcessSource = fc.ProcessSource
	}
	cfg.AssumeYes = cfg.AssumeYes || fc.AssumeYes
	cfg.LenientArchive = cfg.LenientArchive || fc.LenientArchive

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// rebase moves the config root while keeping the other settings.
func rebase(cfg Config, root string) Config {
	next := FromRoot(root)
	next.AllowedFiles = cfg.AllowedFiles
	next.Client = cfg.Client
	next.AssumeYes = cfg.AssumeYes
	next.LenientArchive = cfg.LenientArchive
	next.ProcessSource = cfg.ProcessSource
	return next
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HCTM_CONFIG_DIR"); v != "" {
		*cfg = rebase(*cfg, v)
	}
	if v := os.Getenv("HCTM_CLIENT"); v != "" {
		cfg.Client = v
	}
}
