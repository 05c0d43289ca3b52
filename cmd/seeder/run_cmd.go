package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type runOptions struct {
	ReportPath string
	Manifest   string
	BaseDir    string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replace the catalog tables with the contents of the seed files",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			applyOverrides(a.cfg, opts.BaseDir, opts.Manifest)

			b, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer b.Close()

			p, err := a.newPipeline(ctx, b, opts.ReportPath)
			if err != nil {
				return err
			}

			report, err := p.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d tribes, %d professions, %d talking points (%d rows skipped) in %dms\n",
				report.Tribes, report.Professions, report.TalkingPoints, report.Skipped(), report.DurationMS)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "write a JSON run report to this path")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "YAML manifest listing the seed files (overrides SEED_MANIFEST)")
	cmd.Flags().StringVar(&opts.BaseDir, "base-dir", "", "directory seed file paths are relative to (overrides SEED_BASE_DIR)")
	return cmd
}
