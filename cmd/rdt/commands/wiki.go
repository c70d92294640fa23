package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewWikiCommand creates the wiki command group
func NewWikiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wiki",
		Short: "Browse subreddit wikis",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pages SUBREDDIT",
		Short: "List the wiki pages of a subreddit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			listing, err := client.Wiki().Pages(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list wiki pages of r/%s: %w", args[0], err)
			}

			return renderOutput(cmd.OutOrStdout(), outputFormat(), listing.Data, []string{"Page"}, func(table *tablewriter.Table) {
				for _, page := range listing.Data {
					_ = table.Append([]string{page})
				}
			})
		},
	})

	return cmd
}
