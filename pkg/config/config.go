// Package config provides the immutable runtime configuration for hctm.
//
// A Config is built once at startup (defaults, optional TOML file,
// environment, flags) and then passed by value to every operation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
)

// Process sources understood by the process inspector.
const (
	SourceGopsutil = "gopsutil"
	SourcePS       = "ps"
)

const (
	// DefaultClient is the process name of the chat client.
	DefaultClient = "hexchat"

	// MetaFileName is the metadata file kept inside the themes directory.
	MetaFileName = ".theme"
)

// DefaultAllowedFiles are the only files ever copied out of a theme.
var DefaultAllowedFiles = []string{"colors.conf", "pevents.conf"}

// Config describes where themes live and how actions behave.
type Config struct {
	// ConfigDir is the live client configuration directory that
	// activation copies into (e.g. ~/.config/hexchat).
	ConfigDir string

	// ThemesDir holds one subdirectory per installed theme.
	ThemesDir string

	// MetaFile is the key = value file recording the current theme.
	MetaFile string

	// AllowedFiles is the set of filenames eligible for activation.
	AllowedFiles []string

	// Client is the process name checked before touching files.
	Client string

	// AssumeYes answers every confirmation prompt affirmatively.
	AssumeYes bool

	// LenientArchive keeps installing when an archive entry fails its
	// integrity check; the bad entries are reported and skipped.
	LenientArchive bool

	// ProcessSource selects how running processes are enumerated.
	ProcessSource string
}

// Default returns the configuration rooted at $XDG_CONFIG_HOME/hexchat.
func Default() Config {
	return FromRoot(filepath.Join(xdg.ConfigHome, "hexchat"))
}

// FromRoot returns the default layout below the given client config root.
func FromRoot(root string) Config {
	themes := filepath.Join(root, "themes")
	return Config{
		ConfigDir:     root,
		ThemesDir:     themes,
		MetaFile:      filepath.Join(themes, MetaFileName),
		AllowedFiles:  append([]string(nil), DefaultAllowedFiles...),
		Client:        DefaultClient,
		ProcessSource: SourceGopsutil,
	}
}

// AllowedNames returns a sorted copy of the allowed file set.
func (c Config) AllowedNames() []string {
	names := append([]string(nil), c.AllowedFiles...)
	sort.Strings(names)
	return names
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if c.ConfigDir == "" {
		errs = append(errs, errors.New("config_dir is empty"))
	}
	if c.ThemesDir == "" {
		errs = append(errs, errors.New("themes_dir is empty"))
	}
	if c.MetaFile == "" {
		errs = append(errs, errors.New("meta_file is empty"))
	}
	if len(c.AllowedFiles) == 0 {
		errs = append(errs, errors.New("allowed_files is empty"))
	}
	for _, f := range c.AllowedFiles {
		if f == "" || strings.ContainsAny(f, `/\`) || f == "." || f == ".." {
			errs = append(errs, fmt.Errorf("allowed file %q must be a plain filename", f))
		}
	}
	if strings.TrimSpace(c.Client) == "" {
		errs = append(errs, errors.New("client is empty"))
	}
	switch c.ProcessSource {
	case SourceGopsutil, SourcePS:
	default:
		errs = append(errs, fmt.Errorf("unknown process_source %q (want %q or %q)",
			c.ProcessSource, SourceGopsutil, SourcePS))
	}
	return errors.Join(errs...)
}
