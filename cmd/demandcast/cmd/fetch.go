package cmd

import (
	"fmt"

	"github.com/aouyang1/go-holtwinters/dataset"
	"github.com/spf13/cobra"
)

func newFetchCmd(a *app) *cobra.Command {
	var force bool

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and cache the raw dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := dataset.NewFetcher(a.cfg.DatasetURL, a.cfg.DataDir)
			td, err := fetcher.Load(cmd.Context(), force)
			if err != nil {
				return fmt.Errorf("unable to load dataset, %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d months from %s to %s cached at %s\n",
				td.Len(),
				td.T[0].Format("2006-01"),
				td.T[td.Len()-1].Format("2006-01"),
				fetcher.CachePath(),
			)
			return err
		},
	}
	fetchCmd.Flags().BoolVar(&force, "force", true, "Replace the cached copy")
	return fetchCmd
}
