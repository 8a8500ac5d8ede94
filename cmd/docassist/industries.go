package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docassist/internal/bootstrap"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "List the industry catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, catalog, err := bootstrap.BuildEngine(cfg)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "# catalog %s\n", catalog.Version())
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, p := range catalog.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(industriesCmd)
}
