package process

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// PSLister enumerates processes by running `ps -A`.
type PSLister struct{}

// Names runs ps and parses its CMD column.
func (PSLister) Names(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "ps", "-A").Output()
	if err != nil {
		return nil, err
	}
	names, err := pcParsePS(string(out))
	if err != nil {
		return nil, err
	}
	return names, nil
}

// pcParsePS parses the output of `ps -A` into command names.
// Expected columns: PID TTY TIME CMD
// The header line is skipped. CMD may contain spaces.
func pcParsePS(output string) ([]string, error) {
	if strings.TrimSpace(output) == "" {
		return nil, errors.New("empty ps output")
	}

	var names []string
	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Skip the header line.
		if i == 0 && strings.HasPrefix(line, "PID") {
			continue
		}
		name, ok := pcParsePSLine(line)
		if !ok {
			return nil, errors.New("unexpected ps output line: " + line)
		}
		names = append(names, name)
	}
	return names, nil
}

// pcParsePSLine extracts CMD from a single `ps -A` row.
func pcParsePSLine(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return "", false
	}
	return strings.Join(fields[3:], " "), true
}
