package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/brewsandbytes/seeder/internal/core"
)

type scheduleOptions struct {
	Spec       string
	RunOnStart bool
	ReportPath string
}

func newScheduleCmd(a *app) *cobra.Command {
	var opts scheduleOptions

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Reseed on a cron schedule until interrupted",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			spec := a.cfg.Schedule.Spec
			if opts.Spec != "" {
				spec = opts.Spec
			}
			runOnStart := a.cfg.Schedule.RunOnStart || opts.RunOnStart

			b, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer b.Close()

			p, err := a.newPipeline(ctx, b, opts.ReportPath)
			if err != nil {
				return err
			}

			scheduler, err := core.NewScheduler(p, spec, runOnStart)
			if err != nil {
				return usageError(err)
			}
			return scheduler.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.Spec, "cron", "", "cron expression or descriptor (overrides SEED_SCHEDULE)")
	cmd.Flags().BoolVar(&opts.RunOnStart, "run-on-start", false, "seed once immediately (or set SEED_RUN_ON_START)")
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "rewrite a JSON report after every run")
	return cmd
}
