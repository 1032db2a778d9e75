package cli

import (
	"github.com/spf13/cobra"
)

func newFriendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friend",
		Short: "Friend graph commands",
	}

	cmd.AddCommand(newFriendListCmd())
	cmd.AddCommand(newFriendRequestsCmd())
	cmd.AddCommand(newFriendAddCmd())
	cmd.AddCommand(newFriendAcceptCmd())
	cmd.AddCommand(newFriendDeclineCmd())
	cmd.AddCommand(newFriendRemoveCmd())
	cmd.AddCommand(newFriendExperienceCmd())

	return cmd
}

func newFriendListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List friends",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/friends", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newFriendRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending friend requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []FriendRequest

			if err := client.Get("/api/v1/friends/requests", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newFriendAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <player-id>",
		Short: "Send a friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"recipient_id": args[0]}

			if err := client.Post("/api/v1/friends/requests", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Friend request sent")
			return nil
		},
	}
}

func newFriendAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <player-id>",
		Short: "Accept a friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondToRequest(args[0], true, "Friend request accepted")
		},
	}
}

func newFriendDeclineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decline <player-id>",
		Short: "Decline a friend request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondToRequest(args[0], false, "Friend request declined")
		},
	}
}

func respondToRequest(requesterID string, accept bool, message string) error {
	req := map[string]any{
		"requester_id": requesterID,
		"accept":       accept,
	}

	if err := client.Post("/api/v1/friends/requests/respond", req, nil); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.PrintMessage(message)
	return nil
}

func newFriendRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <player-id>",
		Short: "Remove a friend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/friends/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Friend removed")
			return nil
		},
	}
}

func newFriendExperienceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "experience <player-id>",
		Short: "Show shared experience with a friend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Experience

			if err := client.Get("/api/v1/friends/"+args[0]+"/experience", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
