package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shipway/internal/release"
)

type announceView struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Body   string `json:"body"`
	URL    string `json:"url,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

func newAnnounceCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var checkApprovals bool

	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Create or update the release record for this pipeline run",
		Long: "Reads the run identity from the CI environment, builds a release\n" +
			"announcement, and submits it to the configured release API. An existing\n" +
			"release for the same tag is updated rather than duplicated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			meta := release.MetadataFromEnv(os.LookupEnv)
			ann, err := release.BuildAnnouncement(meta)
			if err != nil {
				return err
			}

			if dryRun {
				return writeJSON(cmd, announceView{
					Tag:    ann.Tag,
					Name:   ann.Name,
					Body:   ann.Body,
					DryRun: true,
				})
			}

			if !cfg.Release.Enabled {
				return errors.New("release announcements are disabled; enable [release] in the configuration")
			}

			service := release.NewClient(cfg, nil, logger)

			if checkApprovals {
				if meta.RunID == "" {
					return errors.New("approval check requires a run id (SHIPWAY_RUN_ID or GITHUB_RUN_ID)")
				}
				approvals, err := service.Approvals(cmd.Context(), meta.RunID)
				if err != nil {
					return err
				}
				if len(approvals) == 0 {
					return fmt.Errorf("run %s has no approvals on record", meta.RunID)
				}
				for _, approval := range approvals {
					if approval.State != "approved" {
						return fmt.Errorf("run %s approval by %s is %s", meta.RunID, approval.Approver, approval.State)
					}
				}
			}

			created, err := service.EnsureRelease(cmd.Context(), ann)
			if err != nil {
				return err
			}

			view := announceView{
				Tag:  created.TagName,
				Name: created.Name,
				Body: created.Body,
				URL:  created.HTMLURL,
			}
			if !stdoutIsTerminal() {
				return writeJSON(cmd, view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Release %s announced", view.Tag)
			if view.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ": %s", view.URL)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the announcement without contacting the release API")
	cmd.Flags().BoolVar(&checkApprovals, "require-approvals", false, "Fail unless the pipeline run has been approved")
	return cmd
}
