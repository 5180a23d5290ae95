package cmd

import (
	"github.com/spf13/cobra"

	services "holidaze-server/service"
	"holidaze-server/util"
)

func newSearchCmd() *cobra.Command {
	var (
		from   string
		to     string
		sort   string
		order  string
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "List venues, optionally only those free between --from and --to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx)
			if err != nil {
				return err
			}

			if cursor != "" {
				rs, err := container.VenueService.LoadMore(ctx, cursor)
				if err != nil {
					return err
				}
				util.PrintVenueResultSet(cmd.OutOrStdout(), rs)
				return nil
			}

			params := services.SearchParams{
				DateFrom:  from,
				DateTo:    to,
				Sort:      sort,
				SortOrder: order,
				Limit:     limit,
			}
			if len(args) == 1 {
				params.Query = args[0]
			}
			rs, err := container.VenueService.Search(ctx, "", params)
			if err != nil {
				return err
			}
			util.PrintVenueResultSet(cmd.OutOrStdout(), rs)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "check-out date (YYYY-MM-DD), exclusive")
	cmd.Flags().StringVar(&sort, "sort", "", "sort field or preset (newDesc, newAsc, priceAsc, priceDesc)")
	cmd.Flags().StringVar(&order, "order", "", "sort order (asc, desc)")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of available venues to collect")
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue a previous search")
	return cmd
}
