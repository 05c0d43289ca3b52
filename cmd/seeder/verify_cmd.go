package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brewsandbytes/seeder/internal/core"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Print the row count of every catalog table",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			b, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer b.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tROWS")
			for _, def := range core.All() {
				n, err := b.CountRows(ctx, def.Info.Key)
				if err != nil {
					return fmt.Errorf("count %s: %w", def.Info.Key, err)
				}
				fmt.Fprintf(w, "%s\t%d\n", def.Info.Label, n)
			}
			return w.Flush()
		},
	}
}
