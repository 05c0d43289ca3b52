package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brewsandbytes/seeder/internal/store"
)

type listOptions struct {
	JSON         bool
	ProfessionID int64
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print catalog rows",
	}
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print rows as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "tribes",
		Short: "List tribes ordered by id",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(b store.Backend) error {
				tribes, err := b.ListTribes(cmd.Context())
				if err != nil {
					return fmt.Errorf("list tribes: %w", err)
				}
				if opts.JSON {
					return writeJSON(cmd.OutOrStdout(), tribes)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
				for _, t := range tribes {
					fmt.Fprintf(w, "%d\t%s\t%s\n", t.ID, t.Name, t.Description)
				}
				return w.Flush()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "professions",
		Short: "List professions ordered by id",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(b store.Backend) error {
				professions, err := b.ListProfessions(cmd.Context())
				if err != nil {
					return fmt.Errorf("list professions: %w", err)
				}
				if opts.JSON {
					return writeJSON(cmd.OutOrStdout(), professions)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tMAIN GROUP\tLABEL\tFUN LABEL")
				for _, p := range professions {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.MainGroup, p.SecondaryLabel, p.FunLabel)
				}
				return w.Flush()
			})
		},
	})

	talkingPoints := &cobra.Command{
		Use:   "talking-points",
		Short: "List talking points, optionally for one profession",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var professionID *int64
			if cmd.Flags().Changed("profession-id") {
				professionID = &opts.ProfessionID
			}
			return a.withStore(cmd, func(b store.Backend) error {
				points, err := b.ListTalkingPoints(cmd.Context(), professionID)
				if err != nil {
					return fmt.Errorf("list talking points: %w", err)
				}
				if opts.JSON {
					return writeJSON(cmd.OutOrStdout(), points)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tPROFESSION\tTRY\tAVOID\tTEXT")
				for _, tp := range points {
					fmt.Fprintf(w, "%s\t%d\t%t\t%t\t%s\n", tp.ID, tp.ProfessionID, tp.TryThese, tp.AvoidThese, tp.Text)
				}
				return w.Flush()
			})
		},
	}
	talkingPoints.Flags().Int64Var(&opts.ProfessionID, "profession-id", 0, "only talking points for this profession id")
	cmd.AddCommand(talkingPoints)

	return cmd
}

// withStore opens the store for the duration of fn.
func (a *app) withStore(cmd *cobra.Command, fn func(store.Backend) error) error {
	b, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()
	return fn(b)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}
