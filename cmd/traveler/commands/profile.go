package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
)

// profileCmd shows the profile, applying any flags first. The profile lives
// only for the process, like the filter criteria.
func profileCmd(opts *rootOptions) *cobra.Command {
	var name, email, phone, avatar string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the traveler profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var u domain.UserProfileUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				u.Name = &name
			}
			if flags.Changed("email") {
				u.Email = &email
			}
			if flags.Changed("phone") {
				u.Phone = &phone
			}
			if flags.Changed("avatar") {
				u.Avatar = &avatar
			}
			p, err := service.UpdateProfile(opts.traveler.Store, u)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\n", p.Name)
			fmt.Fprintf(out, "Email: %s\n", p.Email)
			fmt.Fprintf(out, "Phone: %s\n", p.Phone)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	return cmd
}
