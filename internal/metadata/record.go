package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"shipway/internal/fileutil"
	"shipway/internal/template"
)

// File describes one exported artifact file.
type File struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
}

// Record is the export metadata document.
type Record struct {
	ID             string                `json:"id"`
	GeneratedAt    time.Time             `json:"generated_at"`
	Project        string                `json:"project,omitempty"`
	Version        string                `json:"version,omitempty"`
	TemplateStatus template.Status       `json:"template_status"`
	TemplateFile   string                `json:"template_file,omitempty"`
	Overrides      *template.OverrideMap `json:"overrides"`
	Files          []File                `json:"files"`
}

// Assemble builds a record for the given artifact files and template result.
// Each path must name a readable file; anything else fails the run since a
// metadata record describing unverifiable artifacts is worse than no record.
func Assemble(paths []string, result template.Result, project, version string) (Record, error) {
	record := Record{
		ID:             uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Project:        project,
		Version:        version,
		TemplateStatus: result.Status,
		TemplateFile:   result.Name,
		Overrides:      result.Overrides,
		Files:          make([]File, 0, len(paths)),
	}
	if record.Overrides == nil {
		record.Overrides = template.NewOverrideMap()
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return Record{}, fmt.Errorf("stat artifact %s: %w", path, err)
		}
		if info.IsDir() {
			return Record{}, fmt.Errorf("artifact %s is a directory", path)
		}
		digest, err := fileutil.HashFile(path)
		if err != nil {
			return Record{}, fmt.Errorf("hash artifact %s: %w", path, err)
		}
		record.Files = append(record.Files, File{
			Name:      filepath.Base(path),
			Path:      path,
			SizeBytes: info.Size(),
			SHA256:    digest,
		})
	}
	return record, nil
}

// Write serializes the record as indented JSON to path.
func Write(record Record, path string) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata record: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write metadata record: %w", err)
	}
	return nil
}
