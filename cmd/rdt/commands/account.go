package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/reddit-client/pkg/reddit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewMeCommand creates the me command
func NewMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged in user",
		Long:  "Display the identity of the account behind the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			me, err := client.Account().Me(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), outputFormat(), me, []string{"Property", "Value"}, func(table *tablewriter.Table) {
				_ = table.Append([]string{"Name", me.Name})
				_ = table.Append([]string{"ID", me.Fullname()})
				_ = table.Append([]string{"Created", formatUnix(me.CreatedUTC)})
				_ = table.Append([]string{"Link Karma", strconv.Itoa(me.LinkKarma)})
				_ = table.Append([]string{"Comment Karma", strconv.Itoa(me.CommentKarma)})
				_ = table.Append([]string{"Gold", formatBool(me.IsGold)})
				_ = table.Append([]string{"Moderator", formatBool(me.IsMod)})
				_ = table.Append([]string{"Verified Email", formatBool(me.HasVerifiedEmail)})
				_ = table.Append([]string{"Inbox", strconv.Itoa(me.InboxCount)})
			})
		},
	}
}

// NewKarmaCommand creates the karma command
func NewKarmaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "karma",
		Short: "Show karma by subreddit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			karma, err := client.Account().Karma(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get karma: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), outputFormat(), karma, []string{"Subreddit", "Link Karma", "Comment Karma"}, func(table *tablewriter.Table) {
				for _, k := range karma {
					_ = table.Append([]string{k.Subreddit, strconv.Itoa(k.LinkKarma), strconv.Itoa(k.CommentKarma)})
				}
			})
		},
	}
}

// NewTrophiesCommand creates the trophies command
func NewTrophiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trophies",
		Short: "List trophies of the logged in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			awards, err := client.Account().Trophies(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get trophies: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), outputFormat(), awards, []string{"Name", "Description", "Granted"}, func(table *tablewriter.Table) {
				for _, a := range awards {
					granted := "-"
					if a.GrantedAt != nil {
						granted = formatUnix(*a.GrantedAt)
					}

					_ = table.Append([]string{a.Name, formatValue(a.Description), granted})
				}
			})
		},
	}
}

// NewPrefsCommand creates the prefs command group
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage account preferences",
	}

	cmd.AddCommand(newPrefsShowCommand())
	cmd.AddCommand(newPrefsSetCommand())

	return cmd
}

func newPrefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show account preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			prefs, err := client.Account().Prefs(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get preferences: %w", err)
			}

			return renderPrefs(cmd, prefs)
		},
	}
}

func renderPrefs(cmd *cobra.Command, prefs *reddit.AccountPrefs) error {
	return renderOutput(cmd.OutOrStdout(), outputFormat(), prefs, []string{"Preference", "Value"}, func(table *tablewriter.Table) {
		_ = table.Append([]string{"lang", formatValue(prefs.Lang)})
		_ = table.Append([]string{"accept_pms", formatValue(prefs.AcceptPMs)})
		_ = table.Append([]string{"country_code", formatValue(prefs.CountryCode)})
		_ = table.Append([]string{"default_comment_sort", formatValue(prefs.DefaultCommentSort)})
		_ = table.Append([]string{"over_18", formatBool(prefs.Over18)})
		_ = table.Append([]string{"nightmode", formatBool(prefs.NightMode)})
		_ = table.Append([]string{"show_presence", formatBool(prefs.ShowPresence)})
		_ = table.Append([]string{"email_messages", formatBool(prefs.EmailMessages)})
		_ = table.Append([]string{"num_comments", strconv.Itoa(prefs.NumComments)})
		_ = table.Append([]string{"numsites", strconv.Itoa(prefs.NumSites)})
	})
}

func newPrefsSetCommand() *cobra.Command {
	var (
		lang         string
		acceptPMs    string
		commentSort  string
		over18       bool
		nightMode    bool
		showPresence bool
		numComments  int
		async        bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update account preferences",
		Long:  "Update the given preferences. Preferences without a flag are left unchanged.",
		RunE: func(cmd *cobra.Command, args []string) error {
			submit := &reddit.AccountPrefsSubmit{}
			flags := cmd.Flags()

			if flags.Changed("lang") {
				submit.Lang = &lang
			}

			if flags.Changed("accept-pms") {
				submit.AcceptPMs = &acceptPMs
			}

			if flags.Changed("default-comment-sort") {
				submit.DefaultCommentSort = &commentSort
			}

			if flags.Changed("over-18") {
				submit.Over18 = &over18
			}

			if flags.Changed("nightmode") {
				submit.NightMode = &nightMode
			}

			if flags.Changed("show-presence") {
				submit.ShowPresence = &showPresence
			}

			if flags.Changed("num-comments") {
				submit.NumComments = &numComments
			}

			if *submit == (reddit.AccountPrefsSubmit{}) {
				return ErrNoPrefsGiven
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			ctx := context.Background()

			var prefs *reddit.AccountPrefs

			if async {
				task := client.Account().UpdatePrefsAsync(ctx, submit)
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Submitted preference update (task %s)\n", task.ID())
				prefs, err = task.Wait(ctx)
			} else {
				prefs, err = client.Account().UpdatePrefs(ctx, submit)
			}

			if err != nil {
				return fmt.Errorf("failed to update preferences: %w", err)
			}

			return renderPrefs(cmd, prefs)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "interface language")
	cmd.Flags().StringVar(&acceptPMs, "accept-pms", "", "who may send private messages (everyone, whitelisted)")
	cmd.Flags().StringVar(&commentSort, "default-comment-sort", "", "default comment sort")
	cmd.Flags().BoolVar(&over18, "over-18", false, "show NSFW content")
	cmd.Flags().BoolVar(&nightMode, "nightmode", false, "enable night mode")
	cmd.Flags().BoolVar(&showPresence, "show-presence", false, "show online presence")
	cmd.Flags().IntVar(&numComments, "num-comments", 0, "default number of comments to show")
	cmd.Flags().BoolVar(&async, "async", false, "submit in the background and wait for the task")

	return cmd
}
