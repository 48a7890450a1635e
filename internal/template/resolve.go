package template

import (
	"log/slog"
	"os"
	"path/filepath"

	"shipway/internal/logging"
)

// Status reports the outcome of template resolution.
type Status string

const (
	// StatusReady means a template was found and declares overrides.
	StatusReady Status = "ready"
	// StatusEmpty means a template was found but declares no overrides.
	StatusEmpty Status = "empty"
	// StatusFallback means the caller-supplied default template was used.
	StatusFallback Status = "fallback"
	// StatusMissing means no template content was available anywhere.
	StatusMissing Status = "missing"
)

// Result is the single output record of template resolution. Path and
// Content are empty when Status is missing. Overrides is never nil.
type Result struct {
	Status    Status
	Path      string
	Name      string
	Content   string
	Overrides *OverrideMap
}

// Resolver ties collection, selection, and parsing together.
type Resolver struct {
	collector *Collector
	// readFile stands in for os.ReadFile so tests can exercise the
	// candidate-became-unreadable path between selection and read.
	readFile func(string) ([]byte, error)
	logger   *slog.Logger
}

// NewResolver constructs a Resolver. A nil collector gets a default one.
func NewResolver(collector *Collector, logger *slog.Logger) *Resolver {
	if collector == nil {
		collector = NewCollector(nil, logger)
	}
	return &Resolver{
		collector: collector,
		readFile:  os.ReadFile,
		logger:    logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve walks the artifact tree under root, selects the best template
// candidate, and parses its overrides. When no candidate is found (or the
// chosen one cannot be read) the fallback path is tried before reporting
// missing. A fallback that exists but cannot be read also reports missing.
// Filesystem traversal and archive errors are returned; everything else is
// expressed through the result status.
func (r *Resolver) Resolve(root string, searchDirs []string, fallbackPath string) (Result, error) {
	files, err := r.collector.Collect(root, searchDirs)
	if err != nil {
		return Result{}, err
	}

	result := Result{Status: StatusMissing, Overrides: NewOverrideMap()}

	if chosen := Select(files); chosen != "" {
		content, err := r.readFile(chosen)
		if err != nil {
			r.logger.Warn("chosen template became unreadable, trying fallback",
				logging.String(logging.FieldEventType, "template_unreadable"),
				logging.String("path", chosen),
				logging.Error(err))
		} else {
			result.Status = StatusReady
			result.Path = chosen
			result.Content = string(content)
		}
	}

	if result.Status == StatusMissing && fallbackPath != "" {
		content, err := r.readFile(fallbackPath)
		if err != nil {
			if !os.IsNotExist(err) {
				r.logger.Warn("fallback template unreadable",
					logging.String(logging.FieldEventType, "fallback_unreadable"),
					logging.String("path", fallbackPath),
					logging.Error(err))
			}
		} else {
			result.Status = StatusFallback
			result.Path = fallbackPath
			result.Content = string(content)
		}
	}

	if result.Status == StatusMissing {
		r.logger.Info("no template found",
			logging.String(logging.FieldEventType, "template_missing"),
			logging.String("root", root))
		return result, nil
	}

	result.Name = filepath.Base(result.Path)
	result.Overrides = ParseOverrides(result.Content)
	if result.Status == StatusReady && result.Overrides.Len() == 0 {
		// An empty fallback is a normal outcome and keeps its status.
		result.Status = StatusEmpty
	}

	r.logger.Info("template resolved",
		logging.String(logging.FieldEventType, "template_resolved"),
		logging.String("status", string(result.Status)),
		logging.String("path", result.Path),
		logging.Int("overrides", result.Overrides.Len()))
	return result, nil
}
