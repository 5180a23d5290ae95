package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"holidaze-server/config"
	"holidaze-server/di"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "holidaze",
		Short:         "Holidaze venue availability service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newBookingsCmd())
	root.AddCommand(newRefreshCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newContainer(ctx context.Context) (*di.Container, error) {
	cfg, err := config.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	return di.NewContainer(ctx, cfg)
}
