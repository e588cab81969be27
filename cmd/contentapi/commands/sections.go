package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewSectionsCommand creates the sections command.
func NewSectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sections [TERMS...]",
		Short: "List sections",
		Long:  "List the sections content is published in, optionally filtered by search terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			query := client.Sections()

			if len(args) > 0 {
				query.WithQueryTerm(strings.Join(args, " "))
			}

			if done, err := printURL(cmd.OutOrStdout(), query); done {
				return err
			}

			response, err := query.Sections(cmd.Context())
			if err != nil {
				return fmt.Errorf("sections query failed: %w", err)
			}

			return render(cmd.OutOrStdout(), response, func(w io.Writer) error {
				return displaySectionsTable(w, response.Results)
			})
		},
	}
}
