package ciout

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"shipway/internal/logging"
	"shipway/internal/template"
)

// Output keys consumed by downstream pipeline steps.
const (
	KeyTemplateStatus    = "template_status"
	KeyTemplateFile      = "template_file"
	KeyTemplatePath      = "template_path"
	KeyTemplateContent   = "template_content_b64"
	KeyTemplateOverrides = "template_overrides_b64"
)

// Emitter writes key=value lines to a CI output stream.
type Emitter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewEmitter constructs an Emitter over the given stream.
func NewEmitter(out io.Writer, logger *slog.Logger) *Emitter {
	return &Emitter{out: out, logger: logging.NewComponentLogger(logger, "ciout")}
}

// OpenOutputFile opens the CI output file for appending, creating it when
// absent. Appending keeps lines written by earlier pipeline steps intact.
func OpenOutputFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", path, err)
	}
	return file, nil
}

// Set appends a single key=value line. Keys and values must not break the
// line framing; callers encode multi-line values first.
func (e *Emitter) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("output key must not be empty")
	}
	if strings.ContainsAny(key, "=\n\r") {
		return fmt.Errorf("output key %q contains reserved characters", key)
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("output value for %q spans multiple lines; encode it first", key)
	}
	if _, err := fmt.Fprintf(e.out, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("append output %s: %w", key, err)
	}
	return nil
}

// EmitTemplate publishes a template resolution result. The status is always
// written; file name, path, content, and overrides follow only when content
// was found.
func (e *Emitter) EmitTemplate(result template.Result) error {
	if err := e.Set(KeyTemplateStatus, string(result.Status)); err != nil {
		return err
	}
	if result.Status == template.StatusMissing {
		e.logger.Info("emitted missing-template result",
			logging.String(logging.FieldEventType, "outputs_written"))
		return nil
	}

	overrides, err := json.Marshal(result.Overrides)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}

	pairs := []struct{ key, value string }{
		{KeyTemplateFile, result.Name},
		{KeyTemplatePath, result.Path},
		{KeyTemplateContent, base64.StdEncoding.EncodeToString([]byte(result.Content))},
		{KeyTemplateOverrides, base64.StdEncoding.EncodeToString(overrides)},
	}
	for _, pair := range pairs {
		if err := e.Set(pair.key, pair.value); err != nil {
			return err
		}
	}

	e.logger.Info("emitted template result",
		logging.String(logging.FieldEventType, "outputs_written"),
		logging.String("status", string(result.Status)),
		logging.Int("overrides", result.Overrides.Len()))
	return nil
}
