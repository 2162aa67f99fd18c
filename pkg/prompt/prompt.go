// Package prompt provides the yes/no confirmation capability used before
// destructive steps. Only the literal answer "y" (after trimming and
// lowercasing) counts as yes; anything else, including end of input, is no.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNonInteractive is returned when a confirmation is needed but there is
// no terminal to ask and --yes was not given.
var ErrNonInteractive = errors.New("confirmation required but stdin is not a terminal (use --yes)")

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(question string) (bool, error)

// Confirm calls f.
func (f ConfirmerFunc) Confirm(question string) (bool, error) {
	return f(question)
}

// Always answers every question with the same value.
type Always bool

// Confirm returns a.
func (a Always) Confirm(string) (bool, error) {
	return bool(a), nil
}

// Reader asks on out and reads one answer line per question from in.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader creates a line-based Confirmer.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and reads the answer.
func (r *Reader) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprint(r.out, question); err != nil {
		return false, err
	}
	line, err := r.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(r.out)
	}
	return IsYes(line), nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

type nonInteractive struct{}

func (nonInteractive) Confirm(string) (bool, error) {
	return false, ErrNonInteractive
}

// ForTerminal picks the Confirmer for a CLI run: assumeYes answers yes,
// a terminal on in is asked interactively, otherwise every confirmation
// fails fast with ErrNonInteractive.
func ForTerminal(assumeYes bool, in *os.File, out io.Writer) Confirmer {
	if assumeYes {
		return Always(true)
	}
	if !IsInteractive(in) {
		return nonInteractive{}
	}
	return NewReader(in, out)
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
