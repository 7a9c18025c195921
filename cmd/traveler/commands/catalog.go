package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
)

func destinationsCmd(opts *rootOptions) *cobra.Command {
	var (
		search    string
		location  string
		category  string
		minPrice  float64
		maxPrice  float64
		minRating float64
		popular   bool
	)
	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "List destinations matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.traveler.Store
			if popular {
				return printDestinations(cmd, service.PopularDestinations(store.Destinations(), service.PopularDestinationLimit))
			}

			update := domain.FilterUpdate{}
			flags := cmd.Flags()
			if flags.Changed("search") {
				update.Search = &search
			}
			if flags.Changed("location") {
				sel := domain.ParseSelector(location)
				update.Location = &sel
			}
			if flags.Changed("category") {
				sel := domain.ParseSelector(category)
				update.Category = &sel
			}
			if flags.Changed("min-price") || flags.Changed("max-price") {
				pr := domain.PriceRange{Min: minPrice, Max: maxPrice}
				update.PriceRange = &pr
			}
			if flags.Changed("min-rating") {
				update.MinRating = &minRating
			}
			criteria := store.UpdateFilters(update)
			return printDestinations(cmd, service.FilterDestinations(store.Destinations(), criteria))
		},
	}
	f := cmd.Flags()
	f.StringVar(&search, "search", "", "case-insensitive match on name, location or country")
	f.StringVar(&location, "location", domain.AllSentinel, "exact location")
	f.StringVar(&category, "category", domain.AllSentinel, "exact category")
	f.Float64Var(&minPrice, "min-price", domain.DefaultMinPrice, "minimum price")
	f.Float64Var(&maxPrice, "max-price", domain.DefaultMaxPrice, "maximum price")
	f.Float64Var(&minRating, "min-rating", 0, "minimum rating")
	f.BoolVar(&popular, "popular", false, "show the popular selection instead")
	return cmd
}

func printDestinations(cmd *cobra.Command, dests []domain.Destination) error {
	if len(dests) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No destinations match.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tCATEGORY\tPRICE\tRATING")
	for _, d := range dests {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%.1f\n", d.ID, d.Name, d.Location, d.Category, d.Price, d.Rating)
	}
	return w.Flush()
}

func optionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the available location and category filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dests := opts.traveler.Store.Destinations()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Locations:  %s\n", strings.Join(service.LocationOptions(dests), ", "))
			fmt.Fprintf(out, "Categories: %s\n", strings.Join(service.CategoryOptions(dests), ", "))
			return nil
		},
	}
}

func packagesCmd(opts *rootOptions) *cobra.Command {
	var (
		featured      bool
		destinationID int
	)
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List travel packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := opts.traveler.Store
			var pkgs []domain.Package
			switch {
			case cmd.Flags().Changed("destination"):
				if _, ok := store.Destination(destinationID); !ok {
					return domain.NotFoundError{Resource: "destination", ID: fmt.Sprint(destinationID)}
				}
				pkgs = store.PackagesForDestination(destinationID)
			case featured:
				pkgs = service.FeaturedPackages(store.Packages(), service.FeaturedPackageLimit)
			default:
				pkgs = store.Packages()
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESTINATION\tDURATION\tPRICE")
			for _, p := range pkgs {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%.2f\n", p.ID, p.Name, p.DestinationID, p.Duration, p.Price)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "only the featured packages")
	cmd.Flags().IntVar(&destinationID, "destination", 0, "only packages for this destination")
	return cmd
}
