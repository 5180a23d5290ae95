package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var warmUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the periodic cache refresher",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			container, err := newContainer(ctx)
			if err != nil {
				return err
			}

			if warmUp {
				if _, err := container.VenuesRefresherService.RefreshVenuesData(ctx); err != nil {
					log.Printf("[serve] Initial cache warm-up failed: %v", err)
				}
			}
			scheduler, err := container.VenuesRefresherService.StartPeriodicJob(ctx, container.Config.Refresh.Schedule)
			if err != nil {
				return err
			}
			defer scheduler.Stop()

			return container.HolidazeHttpServer.Start(ctx)
		},
	}

	cmd.Flags().BoolVar(&warmUp, "warm-up", true, "fill the venue cache before serving")
	return cmd
}
