package main

import (
	"errors"

	"github.com/spf13/cobra"

	"shipway/internal/config"
	"shipway/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	var artifactDir string

	cmd := &cobra.Command{
		Use:   "preflight",
		Short: "Verify the environment before the pipeline does real work",
		Long: "Checks that the artifact directory is accessible, the CI output file is\n" +
			"writable, the fallback template is readable, and (when enabled) the release\n" +
			"API responds. Exits non-zero when any check fails.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := firstNonEmpty(artifactDir, cfg.Paths.ArtifactDir)
			if dir != "" {
				if dir, err = config.ExpandPath(dir); err != nil {
					return err
				}
			}

			results := preflight.RunAll(cmd.Context(), cfg, dir)
			if len(results) == 0 {
				return errors.New("nothing to check; configure an artifact directory, output file, or release API")
			}

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				state := "PASS"
				if !result.Passed {
					state = "FAIL"
				}
				rows = append(rows, []string{result.Name, state, result.Detail})
			}
			cmd.Println(renderTable([]string{"Check", "Result", "Detail"}, rows, nil))

			if !preflight.AllPassed(results) {
				return errors.New("one or more preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&artifactDir, "artifact-dir", "a", "", "Root directory of the downloaded artifacts")
	return cmd
}
