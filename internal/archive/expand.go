package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"shipway/internal/fileutil"
	"shipway/internal/logging"
)

// zipMagic is the local-file-header signature every zip archive starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// maxEntryBytes caps a single extracted entry so a malformed bundle cannot
// exhaust the job's disk.
const maxEntryBytes = int64(512 * 1024 * 1024)

// ErrCorrupt marks extraction failures. A bundle that cannot be expanded may
// hide the only template, so callers must treat this as fatal.
var ErrCorrupt = errors.New("corrupt archive")

// Expander extracts zip bundles into sibling directories.
type Expander struct {
	logger *slog.Logger
}

// NewExpander constructs an Expander. A nil logger disables logging.
func NewExpander(logger *slog.Logger) *Expander {
	return &Expander{logger: logging.NewComponentLogger(logger, "archive")}
}

// IsArchive reports whether the file at path begins with the zip signature.
// Missing or short files are simply not archives.
func IsArchive(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}
	return bytes.Equal(header, zipMagic)
}

// Expand extracts the archive at path into a sibling directory and returns
// that directory. It returns "" with a nil error when path is not an archive.
// If the destination directory already exists the prior expansion is reused.
func (e *Expander) Expand(path string) (string, error) {
	if !IsArchive(path) {
		return "", nil
	}

	dest := destinationFor(path)

	lock := flock.New(dest + ".lock")
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock expansion of %s: %w", path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if fileutil.IsDir(dest) {
		e.logger.Debug("reusing expanded archive",
			logging.String(logging.FieldEventType, "archive_reused"),
			logging.String("archive", path),
			logging.String("dest", dest))
		return dest, nil
	}

	if err := extract(path, dest); err != nil {
		// Leave nothing half-written behind for the next run to reuse.
		_ = os.RemoveAll(dest)
		return "", fmt.Errorf("%w: expand %s: %w", ErrCorrupt, path, err)
	}

	e.logger.Debug("expanded archive",
		logging.String(logging.FieldEventType, "archive_expanded"),
		logging.String("archive", path),
		logging.String("dest", dest))
	return dest, nil
}

// destinationFor strips the archive extension to form the expansion
// directory. Extensionless archives get an _extracted suffix so the
// directory cannot collide with the archive itself.
func destinationFor(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + "_extracted"
	}
	return strings.TrimSuffix(path, ext)
}

func extract(path, dest string) error {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create destination %q: %w", dest, err)
	}

	for _, entry := range reader.File {
		if err := extractEntry(entry, dest); err != nil {
			return fmt.Errorf("entry %q: %w", entry.Name, err)
		}
	}
	return nil
}

func extractEntry(entry *zip.File, dest string) error {
	target, err := sanitizeEntryPath(dest, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	source, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	defer source.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, entry.Mode().Perm()|0o200)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(out, io.LimitReader(source, maxEntryBytes+1))
	if err != nil {
		out.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if written > maxEntryBytes {
		out.Close()
		return fmt.Errorf("entry exceeds %d byte limit", maxEntryBytes)
	}
	return out.Close()
}

// sanitizeEntryPath rejects entry names that would escape the destination
// directory (zip slip).
func sanitizeEntryPath(dest, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return filepath.Join(dest, cleaned), nil
}
