// Package process answers whether the chat client is currently running.
//
// Process enumeration sits behind the Lister capability so callers and
// tests can substitute a fixed process table. Enumeration failures are
// returned as errors; callers treat them as "cannot determine" and refuse
// to touch files.
package process

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gitlab.com/tinyland/lab/hctm/pkg/config"
)

// Lister returns the command names of all running processes.
type Lister interface {
	Names(ctx context.Context) ([]string, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context) ([]string, error)

// Names calls f.
func (f ListerFunc) Names(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Static is a fixed process table.
type Static []string

// Names returns the table.
func (s Static) Names(context.Context) ([]string, error) {
	return []string(s), nil
}

// NewLister returns the Lister for a configured process source.
func NewLister(source string) (Lister, error) {
	switch source {
	case config.SourceGopsutil, "":
		return GopsutilLister{}, nil
	case config.SourcePS:
		return PSLister{}, nil
	default:
		return nil, fmt.Errorf("unknown process source %q", source)
	}
}

// Inspector checks the process table for one client name.
type Inspector struct {
	lister Lister
	client string
}

// NewInspector creates an Inspector looking for client via lister.
func NewInspector(lister Lister, client string) *Inspector {
	return &Inspector{lister: lister, client: client}
}

// Running reports whether any process name matches the client.
func (i *Inspector) Running(ctx context.Context) (bool, error) {
	return IsRunning(ctx, i.lister, i.client)
}

// IsRunning reports whether lister shows a process named client. Names are
// compared ignoring case; path-like names are also compared by base name.
func IsRunning(ctx context.Context, lister Lister, client string) (bool, error) {
	names, err := lister.Names(ctx)
	if err != nil {
		return false, fmt.Errorf("listing processes: %w", err)
	}
	for _, n := range names {
		if pcMatches(n, client) {
			return true, nil
		}
	}
	return false, nil
}

func pcMatches(name, client string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	if strings.EqualFold(name, client) {
		return true
	}
	if strings.ContainsRune(name, '/') {
		return strings.EqualFold(filepath.Base(name), client)
	}
	return false
}
