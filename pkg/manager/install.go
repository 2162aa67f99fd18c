package manager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/tinyland/lab/hctm/pkg/archive"
)

// Install unpacks a .hct or .zip archive into a new theme directory named
// after the archive. The archive is opened, integrity-checked and its entry
// paths validated before an existing theme of the same name is replaced.
func (m *Manager) Install(ctx context.Context, archivePath string) error {
	name := archive.ThemeName(archivePath)
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: cannot derive a theme name from %s", archive.ErrArchive, archivePath)
	}

	a, err := archive.Open(archivePath)
	if err != nil {
		if errors.Is(err, archive.ErrArchive) {
			m.printf("%s is not a valid theme archive.\n", archivePath)
			return err
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer a.Close()

	skip, err := m.checkIntegrity(a)
	if err != nil {
		return err
	}

	target := filepath.Join(m.cfg.ThemesDir, name)
	if err := a.Validate(target); err != nil {
		m.printf("Refusing to install: %v\n", err)
		return err
	}

	if err := m.replaceExisting(name, target); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("%w: creating theme directory: %w", ErrIO, err)
	}

	if err := a.Extract(target, skip); err != nil {
		m.log.Error("extraction failed", "theme", name, "error", err)
		if rmErr := os.RemoveAll(target); rmErr != nil {
			m.log.Warn("removing partial theme failed", "path", target, "error", rmErr)
		}
		if errors.Is(err, archive.ErrUnsafePath) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	m.log.Info("theme installed", "theme", name, "entries", len(a.Names()), "skipped", len(skip))
	m.printf("Installed theme '%s'.\n", name)
	return nil
}

// checkIntegrity test-reads the archive. The first bad entry is reported;
// in strict mode it aborts the install, in lenient mode the bad entries
// are returned so extraction can skip them.
func (m *Manager) checkIntegrity(a *archive.Archive) (map[string]bool, error) {
	bad := a.Verify()
	if len(bad) == 0 {
		return nil, nil
	}

	m.printf("Bad Zip File: %s\n", bad[0])
	if !m.cfg.LenientArchive {
		return nil, fmt.Errorf("%w: first bad entry %s", archive.ErrArchiveIntegrity, bad[0])
	}

	m.log.Warn("continuing with corrupt archive", "bad_entries", bad)
	skip := make(map[string]bool, len(bad))
	for _, b := range bad {
		skip[b] = true
	}
	return skip, nil
}

// replaceExisting asks before deleting a theme directory that would be
// overwritten by the install.
func (m *Manager) replaceExisting(name, target string) error {
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: inspecting %s: %w", ErrIO, target, err)
	}

	question := fmt.Sprintf("A theme with the name %s already exists. Replace? (y/N): ", name)
	if err := m.ask(question, "Aborting."); err != nil {
		return err
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("%w: removing existing theme: %w", ErrIO, err)
	}
	m.log.Debug("removed existing theme", "path", target)
	return nil
}
