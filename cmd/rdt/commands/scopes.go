package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewScopesCommand creates the scopes command
func NewScopesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scopes [ID]",
		Short: "List OAuth scopes",
		Long:  "List the OAuth scopes Reddit apps can request, or show a single scope",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer closeClient(client)

			ctx := context.Background()

			if len(args) == 1 {
				scope, err := client.Scopes().Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get scope: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), outputFormat(), scope, []string{"ID", "Name", "Description"}, func(table *tablewriter.Table) {
					_ = table.Append([]string{scope.ID, scope.Name, scope.Description})
				})
			}

			scopes, err := client.Scopes().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list scopes: %w", err)
			}

			return renderOutput(cmd.OutOrStdout(), outputFormat(), scopes, []string{"ID", "Name", "Description"}, func(table *tablewriter.Table) {
				for _, s := range scopes {
					_ = table.Append([]string{s.ID, s.Name, s.Description})
				}
			})
		},
	}
}
