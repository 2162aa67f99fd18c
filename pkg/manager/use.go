package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"

	"gitlab.com/tinyland/lab/hctm/pkg/metadata"
)

// copyPair is one allowed theme file and its destination in the live
// config directory.
type copyPair struct {
	name   string
	src    string
	dst    string
	exists bool
}

// Use activates the named theme: its allowed files are copied into the
// config directory and it is recorded as current. Nothing is touched when
// the theme is missing, already current, the client is running, or the
// user declines to overwrite existing files.
func (m *Manager) Use(ctx context.Context, name string) error {
	th, err := m.lookup(name)
	if err != nil {
		return err
	}

	meta, err := m.loadMeta()
	if err != nil {
		return err
	}
	if current := meta.Current(); current != "" && sameName(current, name) {
		m.printf("The theme '%s' is already in use.\n", current)
		return fmt.Errorf("%w: %s", ErrAlreadyActive, current)
	}

	if err := m.ensureClientStopped(ctx); err != nil {
		return err
	}

	m.printf("Activating theme '%s'\n", th.Name)
	pairs, err := m.planCopies(th.Path)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		m.log.Warn("theme contains no allowed files", "theme", th.Name, "allowed", m.cfg.AllowedNames())
	}

	if err := m.confirmOverwrite(pairs); err != nil {
		return err
	}

	if err := m.copyFiles(ctx, pairs); err != nil {
		return err
	}

	meta[metadata.KeyCurrent] = th.Name
	if err := m.saveMeta(meta); err != nil {
		return err
	}
	m.log.Info("theme activated", "theme", th.Name, "files", len(pairs))
	m.println("Finished.")
	return nil
}

// planCopies pairs every allowed file present in themeDir with its
// destination, in filename order.
func (m *Manager) planCopies(themeDir string) ([]copyPair, error) {
	var pairs []copyPair
	for _, name := range m.cfg.AllowedNames() {
		src := filepath.Join(themeDir, name)
		info, err := os.Stat(src)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: inspecting %s: %w", ErrIO, src, err)
		}
		if !info.Mode().IsRegular() {
			m.log.Debug("skipping non-regular theme entry", "path", src)
			continue
		}

		dst := filepath.Join(m.cfg.ConfigDir, name)
		exists := false
		if _, err := os.Stat(dst); err == nil {
			exists = true
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: inspecting %s: %w", ErrIO, dst, err)
		}
		pairs = append(pairs, copyPair{name: name, src: src, dst: dst, exists: exists})
	}
	return pairs, nil
}

// confirmOverwrite lists the destinations that would be replaced and asks
// before continuing. No question is asked when nothing is overwritten.
func (m *Manager) confirmOverwrite(pairs []copyPair) error {
	var replaced []string
	for _, p := range pairs {
		if p.exists {
			replaced = append(replaced, p.dst)
		}
	}
	if len(replaced) == 0 {
		return nil
	}

	m.println()
	for _, dst := range replaced {
		m.println(dst)
	}
	m.println()
	return m.ask("The above files will be replaced by the new files. Continue? (y/N) ", "Aborted.")
}

// useDeref copies the target of a symlinked theme file rather than the
// link itself; a relative link would dangle inside the config directory.
func useDeref(string) cp.SymlinkAction {
	return cp.Deep
}

// copyFiles copies every pair in order. A failure stops the loop and
// leaves the files copied so far in place.
func (m *Manager) copyFiles(ctx context.Context, pairs []copyPair) error {
	if len(pairs) == 0 {
		return nil
	}
	if err := os.MkdirAll(m.cfg.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating config directory: %w", ErrIO, err)
	}
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cp.Copy(p.src, p.dst, cp.Options{OnSymlink: useDeref}); err != nil {
			m.log.Error("copy failed", "file", p.name, "copied", i, "total", len(pairs), "error", err)
			return fmt.Errorf("%w: copying %s: %w", ErrIO, p.name, err)
		}
		m.log.Debug("copied theme file", "src", p.src, "dst", p.dst)
	}
	return nil
}
