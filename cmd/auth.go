package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"holidaze-server/models"
)

func newRegisterCmd() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a Holidaze account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx)
			if err != nil {
				return err
			}
			profile, err := container.AuthService.Register(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (venue manager: %v)\n", profile.Name, profile.VenueManager)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "profile name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password, at least 8 characters")
	cmd.Flags().BoolVar(&req.VenueManager, "venue-manager", false, "register as a venue manager")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx)
			if err != nil {
				return err
			}
			profile, err := container.AuthService.Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx)
			if err != nil {
				return err
			}
			if err := container.AuthService.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newBookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings [profile]",
		Short: "List bookings, latest stay first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := newContainer(ctx)
			if err != nil {
				return err
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			bookings, err := container.BookingService.ListBookings(ctx, name)
			if err != nil {
				return err
			}
			for _, b := range bookings {
				venueName := ""
				if b.Venue != nil {
					venueName = b.Venue.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %.10s -> %.10s  %d guests  %s\n", b.ID, b.DateFrom, b.DateTo, b.Guests, venueName)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookings: %d\n", len(bookings))
			return nil
		},
	}
}
