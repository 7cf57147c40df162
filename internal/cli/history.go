package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raysh454/inspectra/internal/history"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived scans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Persist {
				fmt.Fprintln(out, styleLabel.Render("History is in-memory only; set history.persist in the config to keep scans."))
				return nil
			}

			store, err := history.Open(cmd.Context(), cfg.History, newLogger(cmd.ErrOrStderr(), "warn"))
			if err != nil {
				return err
			}
			defer store.Close()

			entries := store.List()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, styleLabel.Render("No scans archived yet."))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%d  %s  %s  %s  %s\n",
					e.ID,
					styleLabel.Render(e.CreatedAt.Local().Format("2006-01-02 15:04")),
					badge(e.StatusLabel, e.StatusStyle),
					styleValue.Render(fmt.Sprintf("%3d", e.Score)),
					e.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}
