package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type relationshipLister func(client reddit.AccountClient) func(ctx context.Context, params *reddit.ListingParams) ([]reddit.UserPrefs, error)

// NewFriendsCommand creates the friends command group
func NewFriendsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "friends",
		Aliases: []string{"friend"},
		Short:   "Manage friends",
	}

	cmd.AddCommand(newRelationshipListCommand("list", "List friends", func(c reddit.AccountClient) func(context.Context, *reddit.ListingParams) ([]reddit.UserPrefs, error) {
		return c.Friends
	}))
	cmd.AddCommand(newFriendGetCommand())
	cmd.AddCommand(newFriendAddCommand())
	cmd.AddCommand(newFriendRemoveCommand())

	return cmd
}

// NewMessagingCommand creates the messaging command
func NewMessagingCommand() *cobra.Command {
	return newRelationshipListCommand("messaging", "List users allowed to message you", func(c reddit.AccountClient) func(context.Context, *reddit.ListingParams) ([]reddit.UserPrefs, error) {
		return c.Messaging
	})
}

// NewBlockedCommand creates the blocked command
func NewBlockedCommand() *cobra.Command {
	return newRelationshipListCommand("blocked", "List blocked users", func(c reddit.AccountClient) func(context.Context, *reddit.ListingParams) ([]reddit.UserPrefs, error) {
		return c.Blocked
	})
}

// NewTrustedCommand creates the trusted command
func NewTrustedCommand() *cobra.Command {
	return newRelationshipListCommand("trusted", "List trusted users", func(c reddit.AccountClient) func(context.Context, *reddit.ListingParams) ([]reddit.UserPrefs, error) {
		return c.Trusted
	})
}

func newRelationshipListCommand(use, short string, lister relationshipLister) *cobra.Command {
	flags := &listingFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			users, err := lister(client.Account())(context.Background(), flags.params())
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", use, err)
			}

			return renderUserPrefs(cmd, users)
		},
	}

	flags.register(cmd)

	return cmd
}

func renderUserPrefs(cmd *cobra.Command, users []reddit.UserPrefs) error {
	return renderOutput(cmd.OutOrStdout(), outputFormat(), users, []string{"Name", "Since", "Note"}, func(table *tablewriter.Table) {
		for _, u := range users {
			_ = table.Append([]string{u.Name, formatUnix(u.Date), formatValue(u.Note)})
		}
	})
}

func renderUserActionResult(cmd *cobra.Command, result *reddit.UserActionResult) error {
	return renderOutput(cmd.OutOrStdout(), outputFormat(), result, []string{"Property", "Value"}, func(table *tablewriter.Table) {
		_ = table.Append([]string{"Name", result.Name})
		_ = table.Append([]string{"ID", formatValue(result.ID)})
		_ = table.Append([]string{"Since", formatUnix(result.Date)})
		_ = table.Append([]string{"Note", formatValue(result.Note)})
	})
}

func newFriendGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USERNAME",
		Short: "Show a friend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			result, err := client.Account().GetFriend(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get friend %s: %w", args[0], err)
			}

			return renderUserActionResult(cmd, result)
		},
	}
}

// friendPayload builds the JSON body of a friend update.
func friendPayload(username, note string) (string, error) {
	if note == "" {
		return constants.DefaultFriendPayload, nil
	}

	if utf8.RuneCountInString(note) > constants.MaxFriendNoteLength {
		return "", fmt.Errorf("%w: limit is %d characters", ErrNoteTooLong, constants.MaxFriendNoteLength)
	}

	data, err := json.Marshal(reddit.FriendRequest{Name: username, Note: note})
	if err != nil {
		return "", fmt.Errorf("encoding friend request: %w", err)
	}

	return string(data), nil
}

func newFriendAddCommand() *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:     "add USERNAME",
		Aliases: []string{"update"},
		Short:   "Add or update a friend",
		Long:    "Add a user as friend. Repeating the command with a different --note updates the note (Reddit Premium only).",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := friendPayload(args[0], note)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			result, err := client.Account().UpdateFriend(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("failed to add friend %s: %w", args[0], err)
			}

			return renderUserActionResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "note attached to the friend")

	return cmd
}

func newFriendRemoveCommand() *cobra.Command {
	var async bool

	cmd := &cobra.Command{
		Use:     "remove USERNAME",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a friend",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			ctx := context.Background()

			if async {
				task := client.Account().DeleteFriendAsync(ctx, args[0])
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Submitted removal of %s (task %s)\n", args[0], task.ID())
				_, err = task.Wait(ctx)
			} else {
				err = client.Account().DeleteFriend(ctx, args[0])
			}

			if err != nil {
				return fmt.Errorf("failed to remove friend %s: %w", args[0], err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from friends\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "submit in the background and wait for the task")

	return cmd
}
