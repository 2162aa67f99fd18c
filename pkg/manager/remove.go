package manager

import (
	"context"
	"fmt"
	"os"

	"gitlab.com/tinyland/lab/hctm/pkg/metadata"
)

// Remove deletes an installed theme directory after confirmation. If the
// theme is current, the current marker is cleared; files already copied
// into the config directory stay where they are.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if err := m.ensureClientStopped(ctx); err != nil {
		return err
	}

	th, err := m.lookup(name)
	if err != nil {
		return err
	}

	meta, err := m.loadMeta()
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Remove theme '%s' and all of its files? (y/N): ", th.Name)
	if err := m.ask(question, "Aborted."); err != nil {
		return err
	}

	if err := os.RemoveAll(th.Path); err != nil {
		return fmt.Errorf("%w: removing %s: %w", ErrIO, th.Path, err)
	}

	if current := meta.Current(); current != "" && sameName(current, th.Name) {
		delete(meta, metadata.KeyCurrent)
		if err := m.saveMeta(meta); err != nil {
			return err
		}
		m.log.Info("cleared current theme", "theme", th.Name)
	}

	m.log.Info("theme removed", "theme", th.Name)
	m.printf("Removed theme '%s'.\n", th.Name)
	return nil
}
