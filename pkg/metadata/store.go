// Package metadata reads and writes the small key = value file that records
// which theme is active.
//
// The format is one "key = value" pair per line. Blank lines, lines starting
// with '#', and lines without '=' are skipped on read; keys and values are
// trimmed. Writes emit every pair sorted by key.
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// KeyCurrent holds the name of the active theme.
const KeyCurrent = "current"

// Data is the parsed key/value mapping.
type Data map[string]string

// Current returns the active theme name, or "" when none is recorded.
func (d Data) Current() string {
	return d[KeyCurrent]
}

// Load reads the metadata file at path. A missing file yields an empty
// mapping rather than an error.
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Data{}, nil
		}
		return nil, fmt.Errorf("opening metadata: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes metadata lines from r. Malformed lines are ignored.
func Parse(r io.Reader) (Data, error) {
	d := Data{}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if key, value, ok := mdParseLine(line); ok {
			d[key] = value
		}
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// mdParseLine splits a single line on its first '='.
func mdParseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// Encode writes d to w, one line per entry in ascending key order.
func Encode(w io.Writer, d Data) error {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s = %s\n", k, d[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save replaces the file at path with the encoded mapping. The content is
// written to a temp file in the same directory and renamed into place.
func Save(path string, d Data) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".theme-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for metadata: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := Encode(tmpFile, d); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing metadata: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing metadata temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting metadata permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("atomic rename for metadata: %w", err)
	}

	return nil
}
