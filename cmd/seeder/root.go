package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewsandbytes/seeder/internal/config"
	"github.com/brewsandbytes/seeder/internal/core"
	"github.com/brewsandbytes/seeder/internal/logging"
)

// app carries state shared by all subcommands once configuration is loaded.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "seeder",
		Short:         "Reseed the Brews and Bytes catalog from CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
			slog.Debug("configuration loaded",
				"driver", cfg.Database.Driver,
				"database", cfg.Database.Addr(),
				"source", cfg.Source.Kind,
				"tables", core.TableCount(),
			)
			a.cfg = cfg
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(newRunCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	cmd.AddCommand(newVerifyCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newScheduleCmd(a))
	return cmd
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(check(cmd, args))
	}
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if strings.HasPrefix(err.Error(), "unknown command") {
			err = usageError(err)
		}
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		if msg := core.FormatUserError(err); code != exitUsage && core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}
}
