package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNearbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Location discovery commands",
	}

	cmd.AddCommand(newNearbyPlayersCmd())
	cmd.AddCommand(newNearbyStrangersCmd())

	return cmd
}

func newNearbyPlayersCmd() *cobra.Command {
	var radiusKm float64

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List players near you",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players/nearby"
			if radiusKm > 0 {
				path = fmt.Sprintf("%s?radius_km=%g", path, radiusKm)
			}

			var result []NearbyPlayer
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&radiusKm, "radius-km", 0, "Search radius in km (default 5)")

	return cmd
}

func newNearbyStrangersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strangers",
		Short: "List players you have no social tie to",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []NearbyPlayer
			if err := client.Get("/api/v1/players/non-friends", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
