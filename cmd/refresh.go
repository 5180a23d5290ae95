package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Warm the venue cache once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx)
			if err != nil {
				return err
			}
			ids, err := container.VenuesRefresherService.RefreshVenuesData(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached %d venues\n", len(ids))
			return nil
		},
	}
}
