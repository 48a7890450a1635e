package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shipway/internal/archive"
	"shipway/internal/ciout"
	"shipway/internal/config"
	"shipway/internal/template"
)

type templateView struct {
	Status    string                `json:"status"`
	File      string                `json:"file,omitempty"`
	Path      string                `json:"path,omitempty"`
	Overrides *template.OverrideMap `json:"overrides"`
}

func newTemplateCommand(ctx *commandContext) *cobra.Command {
	var artifactDir string
	var fallbackPath string
	var outputPath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Resolve the customization template inside downloaded artifacts",
		Long: "Walks the artifact directory (expanding nested zip bundles), selects the best\n" +
			"customization template, parses its overrides, and appends the result to the\n" +
			"CI output file as key=value lines.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			dir := firstNonEmpty(artifactDir, cfg.Paths.ArtifactDir)
			if dir == "" {
				return errors.New("artifact directory is required (set --artifact-dir or paths.artifact_dir)")
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return err
			}

			fallback := firstNonEmpty(fallbackPath, cfg.Template.FallbackPath)
			if fallback != "" {
				if fallback, err = config.ExpandPath(fallback); err != nil {
					return err
				}
			}

			collector := template.NewCollector(archive.NewExpander(logger), logger)
			result, err := template.NewResolver(collector, logger).Resolve(dir, cfg.Template.SearchDirs, fallback)
			if err != nil {
				return err
			}

			if out := firstNonEmpty(outputPath, cfg.OutputFilePath()); out != "" {
				file, err := ciout.OpenOutputFile(out)
				if err != nil {
					return err
				}
				emitErr := ciout.NewEmitter(file, logger).EmitTemplate(result)
				if closeErr := file.Close(); emitErr == nil {
					emitErr = closeErr
				}
				if emitErr != nil {
					return emitErr
				}
			}

			return renderTemplateResult(cmd, result, jsonOut)
		},
	}

	cmd.Flags().StringVarP(&artifactDir, "artifact-dir", "a", "", "Root directory of the downloaded artifacts")
	cmd.Flags().StringVar(&fallbackPath, "fallback", "", "Default template used when none is found among the artifacts")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "CI output file receiving key=value lines")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the result as JSON even on a terminal")
	return cmd
}

func renderTemplateResult(cmd *cobra.Command, result template.Result, jsonOut bool) error {
	if jsonOut || !stdoutIsTerminal() {
		return writeJSON(cmd, templateView{
			Status:    string(result.Status),
			File:      result.Name,
			Path:      result.Path,
			Overrides: result.Overrides,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Status: %s\n", result.Status)
	if result.Path != "" {
		fmt.Fprintf(out, "Template: %s\n", result.Path)
	}
	if result.Overrides.Len() == 0 {
		fmt.Fprintln(out, "No overrides declared.")
		return nil
	}

	rows := make([][]string, 0, result.Overrides.Len())
	for _, key := range result.Overrides.Keys() {
		value, _ := result.Overrides.Get(key)
		rows = append(rows, []string{key, value})
	}
	fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, rows, nil))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
