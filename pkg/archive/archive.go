// Package archive opens theme archives (.hct / .zip), checks their
// integrity and extracts them without letting entries escape the target
// directory.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrArchive indicates the input is not a readable zip archive.
	ErrArchive = errors.New("not a valid theme archive")

	// ErrArchiveIntegrity indicates an entry failed its integrity check.
	ErrArchiveIntegrity = errors.New("archive integrity check failed")

	// ErrUnsafePath indicates an entry would be written outside the target.
	ErrUnsafePath = errors.New("illegal file path in archive")
)

// maxEntrySize bounds the decompressed size of a single entry.
const maxEntrySize = 64 << 20

// suffixes are stripped from archive filenames to derive the theme name.
var suffixes = []string{".hct", ".zip"}

// ThemeName derives the theme name from an archive path: the base name with
// a trailing .hct or .zip (any case) cut off. Other extensions are kept.
func ThemeName(archivePath string) string {
	name := filepath.Base(archivePath)
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return name[:len(name)-len(s)]
		}
	}
	return name
}

// Archive is an opened zip theme archive.
type Archive struct {
	path string
	r    *zip.ReadCloser
}

// Open sniffs path and opens it as a zip archive.
func Open(path string) (*Archive, error) {
	mime, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	if !arIsZip(mime) {
		return nil, fmt.Errorf("%w: %s is %s", ErrArchive, filepath.Base(path), mime.String())
	}

	r, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("%w: %w", ErrArchive, err)
	}
	return &Archive{path: path, r: r}, nil
}

// arIsZip reports whether mime is zip or a zip-based format.
func arIsZip(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.r.Close()
}

// Names returns the entry names in archive order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.r.File))
	for _, f := range a.r.File {
		names = append(names, f.Name)
	}
	return names
}

// Verify test-reads every entry without extracting it and returns the names
// of entries whose data is corrupt, in archive order. An empty result means
// the archive is intact.
func (a *Archive) Verify() []string {
	var bad []string
	for _, f := range a.r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := arTestEntry(f); err != nil {
			bad = append(bad, f.Name)
		}
	}
	return bad
}

func arTestEntry(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return copyWithLimit(io.Discard, rc, f.Name, maxEntrySize)
}

// Validate checks that every entry would land below dest.
func (a *Archive) Validate(dest string) error {
	_, err := a.targets(filepath.Clean(dest))
	return err
}

func (a *Archive) targets(dest string) ([]string, error) {
	targets := make([]string, len(a.r.File))
	for i, f := range a.r.File {
		fpath, err := validatePath(f.Name, dest)
		if err != nil {
			return nil, err
		}
		targets[i] = fpath
	}
	return targets, nil
}

// Extract writes every entry below dest, preserving relative paths. Entries
// named in skip are left out. All entry paths are validated before anything
// is written; a single unsafe path aborts the extraction.
func (a *Archive) Extract(dest string, skip map[string]bool) error {
	targets, err := a.targets(filepath.Clean(dest))
	if err != nil {
		return err
	}

	for i, f := range a.r.File {
		if skip[f.Name] {
			continue
		}
		if err := extractZipFile(f, targets[i]); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

// validatePath resolves an entry name below dest and rejects names that
// are absolute, contain a backslash, or climb out of it.
func validatePath(name, dest string) (string, error) {
	if strings.Contains(name, `\`) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	clean := filepath.FromSlash(name)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, string(os.PathSeparator)) || filepath.VolumeName(clean) != "" {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	fpath := filepath.Join(dest, clean)
	if fpath != dest && !strings.HasPrefix(fpath, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return fpath, nil
}

func extractZipFile(f *zip.File, fpath string) error {
	if f.FileInfo().IsDir() {
		return os.MkdirAll(fpath, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return err
	}

	return copyFileContents(f, fpath)
}

func copyFileContents(f *zip.File, fpath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	outFile, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0o600)
	if err != nil {
		return err
	}

	if err := copyWithLimit(outFile, rc, f.Name, maxEntrySize); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

func copyWithLimit(dst io.Writer, src io.Reader, name string, maxSize int64) error {
	n, err := io.Copy(dst, io.LimitReader(src, maxSize+1))
	if err != nil {
		return err
	}
	if n > maxSize {
		return fmt.Errorf("decompressed size of %s exceeds limit of %d bytes", name, maxSize)
	}
	return nil
}
