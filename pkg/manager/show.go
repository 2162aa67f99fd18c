package manager

import (
	"context"

	"gitlab.com/tinyland/lab/hctm/pkg/ui"
)

// Show prints the installed themes, marking the current one. A current
// theme whose directory no longer exists is listed as missing.
func (m *Manager) Show(ctx context.Context) error {
	themes, err := m.installed()
	if err != nil {
		return err
	}
	if len(themes) == 0 {
		m.println("No themes installed.")
		return nil
	}

	meta, err := m.loadMeta()
	if err != nil {
		return err
	}
	current := meta.Current()

	m.println()
	m.println(ui.Heading("Installed themes:"))
	found := false
	for _, th := range themes {
		isCurrent := current != "" && sameName(current, th.Name)
		if isCurrent {
			found = true
		}
		m.println(ui.ThemeLine(th.Name, isCurrent, false))
	}
	if current != "" && !found {
		m.log.Warn("current theme is not installed", "theme", current)
		m.println(ui.ThemeLine(current, false, true))
	}
	m.println()
	m.println(ui.Hint("Use -u/--use THEME to use the specified theme."))
	return nil
}
