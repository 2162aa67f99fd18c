// Package manager implements the theme actions: listing, activating,
// installing and removing themes.
//
// A Manager is built from an immutable config.Config plus the capabilities
// it needs from the outside world (process probe, confirmation, output).
// Every action reports its outcome to the user on the output writer and
// returns an error wrapping one of the Err* sentinels so the CLI can pick
// an exit code.
package manager

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gitlab.com/tinyland/lab/hctm/pkg/config"
	"gitlab.com/tinyland/lab/hctm/pkg/metadata"
	"gitlab.com/tinyland/lab/hctm/pkg/prompt"
	"gitlab.com/tinyland/lab/hctm/pkg/repository"
)

// ClientProbe reports whether the chat client is running.
type ClientProbe interface {
	Running(ctx context.Context) (bool, error)
}

// Options supplies the Manager's collaborators.
type Options struct {
	// Probe checks for the running client. Required for Use and Remove.
	Probe ClientProbe

	// Confirm answers overwrite and delete questions. Defaults to
	// answering no.
	Confirm prompt.Confirmer

	// Out receives user-facing messages. Defaults to io.Discard.
	Out io.Writer

	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Manager runs theme actions against one configuration.
type Manager struct {
	cfg     config.Config
	probe   ClientProbe
	confirm prompt.Confirmer
	out     io.Writer
	log     *slog.Logger
}

// New creates a Manager.
func New(cfg config.Config, opts Options) *Manager {
	m := &Manager{
		cfg:     cfg,
		probe:   opts.Probe,
		confirm: opts.Confirm,
		out:     opts.Out,
		log:     opts.Logger,
	}
	if m.confirm == nil {
		m.confirm = prompt.Always(false)
	}
	if m.out == nil {
		m.out = io.Discard
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

func (m *Manager) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Manager) println(args ...any) {
	fmt.Fprintln(m.out, args...)
}

// installed lists the themes, wrapping failures as ErrIO.
func (m *Manager) installed() ([]repository.Theme, error) {
	themes, err := repository.List(m.cfg.ThemesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return themes, nil
}

// lookup finds name among the installed themes.
func (m *Manager) lookup(name string) (repository.Theme, error) {
	themes, err := m.installed()
	if err != nil {
		return repository.Theme{}, err
	}
	th, ok := repository.Find(themes, name)
	if !ok {
		m.printf("No such theme '%s'.\n", name)
		return repository.Theme{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return th, nil
}

func (m *Manager) loadMeta() (metadata.Data, error) {
	meta, err := metadata.Load(m.cfg.MetaFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return meta, nil
}

func (m *Manager) saveMeta(meta metadata.Data) error {
	if err := metadata.Save(m.cfg.MetaFile, meta); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// ensureClientStopped refuses to continue while the client is running or
// when that cannot be determined.
func (m *Manager) ensureClientStopped(ctx context.Context) error {
	if m.probe == nil {
		return fmt.Errorf("%w: no process probe configured", ErrClientRunning)
	}
	running, err := m.probe.Running(ctx)
	if err != nil {
		m.log.Error("process check failed", "client", m.cfg.Client, "error", err)
		m.printf("Cannot determine whether %s is running.\n", m.cfg.Client)
		return fmt.Errorf("%w: %w", ErrClientRunning, err)
	}
	if running {
		m.printf("%s is still running.\n", m.cfg.Client)
		m.println("You have to close it before any changes to the themes can be applied.")
		return fmt.Errorf("%w: %s", ErrClientRunning, m.cfg.Client)
	}
	return nil
}

// ask wraps the confirmer; a declined or unanswerable question is
// reported as ErrDeclined.
func (m *Manager) ask(question, abortMsg string) error {
	ok, err := m.confirm.Confirm(question)
	if err != nil {
		m.println(abortMsg)
		return fmt.Errorf("%w: %w", ErrDeclined, err)
	}
	if !ok {
		m.println(abortMsg)
		return ErrDeclined
	}
	return nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}
