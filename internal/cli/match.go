package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match lifecycle commands",
	}

	cmd.AddCommand(newMatchHostCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchJoinCmd())
	cmd.AddCommand(newMatchLeaveCmd())
	cmd.AddCommand(newMatchRoleCmd())
	cmd.AddCommand(newMatchReadyCmd())
	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchEndCmd())
	cmd.AddCommand(newMatchCatchCmd())
	cmd.AddCommand(newMatchNearbyCmd())
	cmd.AddCommand(newMatchHidersCmd())
	cmd.AddCommand(newMatchNearestHiderCmd())

	return cmd
}

func newMatchHostCmd() *cobra.Command {
	var name string
	var lat, lon float64
	var maxHunters, maxHiders int

	cmd := &cobra.Command{
		Use:   "host",
		Short: "Host a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]any{
				"name":     name,
				"location": map[string]float64{"latitude": lat, "longitude": lon},
			}
			if maxHunters > 0 {
				req["max_hunters"] = maxHunters
			}
			if maxHiders > 0 {
				req["max_hiders"] = maxHiders
			}

			var result Match
			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Match name (required)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Match latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Match longitude")
	cmd.Flags().IntVar(&maxHunters, "max-hunters", 0, "Hunter slots (default 5)")
	cmd.Flags().IntVar(&maxHiders, "max-hiders", 0, "Hider slots (default 5)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [match-id]",
		Short: "Show a match (defaults to your current match)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches/mine"
			if len(args) == 1 {
				path = "/api/v1/matches/" + args[0]
			}

			var result Match
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <match-id>",
		Short: "Join a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match
			if err := client.Post("/api/v1/matches/"+args[0]+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave your current match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/matches/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left match")
			return nil
		},
	}
}

func newMatchRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <match-id> <hunter|hider>",
		Short: "Pick a role in a match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"role": args[1]}
			if err := client.Patch("/api/v1/matches/"+args[0]+"/role", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Role set to " + args[1])
			return nil
		},
	}
}

func newMatchReadyCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "ready <match-id>",
		Short: "Mark yourself ready (or not, with --off)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"value": !off}
			if err := client.Put("/api/v1/matches/"+args[0]+"/ready", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if off {
				out.PrintMessage("Marked not ready")
			} else {
				out.PrintMessage("Marked ready")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Clear the ready flag")

	return cmd
}

func newMatchStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <match-id>",
		Short: "Start a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/matches/"+args[0]+"/start", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Match started")
			return nil
		},
	}
}

func newMatchEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the match you are hosting",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/matches/end", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Match ended")
			return nil
		},
	}
}

func newMatchCatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catch <match-id> <player-id>",
		Short: "Catch a hider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target_id": args[1]}
			if err := client.Post("/api/v1/matches/"+args[0]+"/catch", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Hider caught")
			return nil
		},
	}
}

func newMatchNearbyCmd() *cobra.Command {
	var radiusKm float64

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List open matches near you",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches/nearby"
			if radiusKm > 0 {
				path = fmt.Sprintf("%s?radius_km=%g", path, radiusKm)
			}

			var result []NearbyMatch
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

func newMatchHidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hiders",
		Short: "List hiders visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []NearbyPlayer
			if err := client.Get("/api/v1/matches/mine/hiders", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchNearestHiderCmd() *cobra.Command {
	var radiusM float64

	cmd := &cobra.Command{
		Use:   "nearest-hider",
		Short: "Probe for the nearest visible hider",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches/mine/nearest-hider"
			if radiusM > 0 {
				path = fmt.Sprintf("%s?radius_m=%g", path, radiusM)
			}

			var result NearestHider
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Float64Var(&radiusM, "radius-m", 0, "Probe radius in meters (default 100)")

	return cmd
}
