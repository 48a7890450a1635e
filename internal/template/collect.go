package template

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"shipway/internal/archive"
	"shipway/internal/logging"
)

// Collector walks an artifact tree and yields every plain file reachable
// from the configured roots, expanding zip bundles as it encounters them.
type Collector struct {
	expander *archive.Expander
	logger   *slog.Logger
}

// NewCollector constructs a Collector. A nil logger disables logging.
func NewCollector(expander *archive.Expander, logger *slog.Logger) *Collector {
	if expander == nil {
		expander = archive.NewExpander(logger)
	}
	return &Collector{
		expander: expander,
		logger:   logging.NewComponentLogger(logger, "collector"),
	}
}

// Collect performs a breadth-first traversal of each search directory under
// root (in order) and finally root itself, returning the plain files found.
// Missing roots are skipped; each directory is visited at most once even
// when roots overlap or symlinks form cycles. Archives count as directories
// once expanded, not as plain files.
func (c *Collector) Collect(root string, searchDirs []string) ([]string, error) {
	queue := make([]string, 0, len(searchDirs)+1)
	for _, dir := range searchDirs {
		queue = append(queue, filepath.Join(root, dir))
	}
	queue = append(queue, root)

	visited := make(map[string]struct{})
	var files []string

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				c.logger.Debug("skipping absent directory", logging.String("dir", dir))
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			continue
		}

		key := canonicalPath(dir)
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				queue = append(queue, path)
				continue
			}

			target, err := os.Stat(path)
			if err != nil {
				// Broken symlink or a file lost to a racing deletion.
				c.logger.Debug("skipping unstattable entry", logging.String("path", path), logging.Error(err))
				continue
			}
			if target.IsDir() {
				queue = append(queue, path)
				continue
			}

			expanded, err := c.expander.Expand(path)
			if err != nil {
				return nil, err
			}
			if expanded != "" {
				queue = append(queue, expanded)
				continue
			}
			files = append(files, path)
		}
	}

	c.logger.Debug("collection finished",
		logging.String(logging.FieldEventType, "collection_finished"),
		logging.Int("files", len(files)),
		logging.Int("directories", len(visited)))
	return files, nil
}

// canonicalPath resolves a directory to a stable key for the visited set so
// symlinked aliases of the same directory are traversed only once.
func canonicalPath(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
