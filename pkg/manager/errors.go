package manager

import (
	"errors"

	"gitlab.com/tinyland/lab/hctm/pkg/archive"
	"gitlab.com/tinyland/lab/hctm/pkg/prompt"
)

var (
	// ErrNotFound indicates the named theme is not installed.
	ErrNotFound = errors.New("theme not found")

	// ErrAlreadyActive indicates the requested theme is already current.
	ErrAlreadyActive = errors.New("theme already active")

	// ErrClientRunning indicates the client is running, or that it could
	// not be determined whether it is.
	ErrClientRunning = errors.New("client is running")

	// ErrDeclined indicates a confirmation was answered with no.
	ErrDeclined = errors.New("confirmation declined")

	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("file operation failed")

	// ErrUsage indicates invalid command-line usage or configuration.
	ErrUsage = errors.New("usage error")
)

// Exit codes returned by the CLI.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitUsage     = 2
	ExitNotFound  = 3
	ExitRunning   = 4
	ExitDeclined  = 5
	ExitIntegrity = 6
)

// ExitCode maps an action error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, ErrAlreadyActive):
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrClientRunning):
		return ExitRunning
	case errors.Is(err, ErrDeclined), errors.Is(err, prompt.ErrNonInteractive):
		return ExitDeclined
	case errors.Is(err, archive.ErrArchive),
		errors.Is(err, archive.ErrArchiveIntegrity),
		errors.Is(err, archive.ErrUnsafePath):
		return ExitIntegrity
	default:
		return ExitFailure
	}
}
