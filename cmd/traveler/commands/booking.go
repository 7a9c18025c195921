package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
)

func bookCmd(opts *rootOptions) *cobra.Command {
	var (
		in        service.BookingInput
		startDate string
		basePrice float64
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a trip to a destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(startDate) != "" {
				start, err := time.Parse(time.DateOnly, strings.TrimSpace(startDate))
				if err != nil {
					return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
				}
				in.StartDate = start
			}
			if cmd.Flags().Changed("base-price") {
				in.BasePrice = &basePrice
			}

			booking, err := opts.traveler.Bookings.CreateBooking(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Booking confirmed: %s\n", booking.ID)
			fmt.Fprintf(out, "  %s, %s, %d traveler(s)\n", booking.DestinationName, booking.StartDate.Format(time.DateOnly), booking.Travelers)
			fmt.Fprintf(out, "  Total: %.2f\n", booking.TotalPrice)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.ID, "id", "", "booking id (generated when empty)")
	f.StringVar(&in.FullName, "name", "", "traveler full name")
	f.StringVar(&in.Email, "email", "", "contact email")
	f.StringVar(&in.Phone, "phone", "", "contact phone")
	f.IntVar(&in.DestinationID, "destination", 0, "destination id")
	f.StringVar(&startDate, "start", "", "start date, YYYY-MM-DD")
	f.IntVar(&in.Travelers, "travelers", 1, "number of travelers")
	f.StringSliceVar(&in.Extras, "extra", nil, "optional extras (repeatable)")
	f.StringVar(&in.SpecialRequests, "requests", "", "special requests")
	f.StringVar(&in.Duration, "duration", "", "trip duration")
	f.Float64Var(&basePrice, "base-price", 0, "override the per-traveler price")
	return cmd
}

func bookingsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List local bookings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printBookings(cmd, opts.traveler.Store.Bookings())
		},
	}
}

func cancelCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := opts.traveler.Bookings.CancelBooking(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return domain.NotFoundError{Resource: "booking", ID: args[0]}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", args[0])
			return nil
		},
	}
}

func remoteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remote",
		Short: "List bookings held by the booking record service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.traveler.Bookings.MirroredBookings(cmd.Context())
			if err != nil {
				return err
			}
			return printBookings(cmd, list)
		},
	}
}

func printBookings(cmd *cobra.Command, list []domain.Booking) error {
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No bookings.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDESTINATION\tSTART\tTRAVELERS\tTOTAL\tSTATUS")
	for _, b := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\n",
			b.ID, b.DestinationName, b.StartDate.Format(time.DateOnly), b.Travelers, b.TotalPrice, b.Status)
	}
	return w.Flush()
}
