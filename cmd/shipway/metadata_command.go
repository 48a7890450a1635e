package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shipway/internal/archive"
	"shipway/internal/config"
	"shipway/internal/metadata"
	"shipway/internal/release"
	"shipway/internal/template"
)

func newMetadataCommand(ctx *commandContext) *cobra.Command {
	var artifactDir string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "metadata <artifact-file>...",
		Short: "Write the export metadata record for the published artifacts",
		Long: "Hashes each named artifact file, resolves the customization template, and\n" +
			"writes a JSON record describing the export: artifact names, sizes, digests,\n" +
			"template status, and the declared overrides.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			result := template.Result{Status: template.StatusMissing, Overrides: template.NewOverrideMap()}
			dir := firstNonEmpty(artifactDir, cfg.Paths.ArtifactDir)
			if dir != "" {
				if dir, err = config.ExpandPath(dir); err != nil {
					return err
				}
				fallback := cfg.Template.FallbackPath
				if fallback != "" {
					if fallback, err = config.ExpandPath(fallback); err != nil {
						return err
					}
				}
				collector := template.NewCollector(archive.NewExpander(logger), logger)
				if result, err = template.NewResolver(collector, logger).Resolve(dir, cfg.Template.SearchDirs, fallback); err != nil {
					return err
				}
			}

			meta := release.MetadataFromEnv(os.LookupEnv)
			record, err := metadata.Assemble(args, result, meta.Project, meta.Version)
			if err != nil {
				return err
			}

			out := firstNonEmpty(outputPath, cfg.Metadata.OutputPath)
			if out == "" {
				return errors.New("metadata output path is required (set --output or metadata.output_path)")
			}
			if out, err = config.ExpandPath(out); err != nil {
				return err
			}
			if err := metadata.Write(record, out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote metadata for %d artifact(s) to %s\n", len(record.Files), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artifactDir, "artifact-dir", "a", "", "Root directory searched for the customization template")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path of the metadata JSON file")
	return cmd
}
