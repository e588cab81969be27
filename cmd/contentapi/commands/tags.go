package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// NewTagsCommand creates the tags command.
func NewTagsCommand() *cobra.Command {
	var (
		section  string
		tagType  string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "tags [TERMS...]",
		Short: "List and search tags",
		Long:  "List tags, optionally filtered by search terms, section and tag type (keyword, contributor, series, ...)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			query := client.Tags()

			if len(args) > 0 {
				query.WithQueryTerm(strings.Join(args, " "))
			}

			if section != "" {
				query.WithSectionTerm(section)
			}

			if tagType != "" {
				query.WithTypeTerm(tagType)
			}

			if page > 0 {
				query.WithPage(page)
			}

			if pageSize > 0 {
				query.WithPageSize(pageSize)
			}

			if done, err := printURL(cmd.OutOrStdout(), query); done {
				return err
			}

			response, err := query.Tags(cmd.Context())
			if err != nil {
				return fmt.Errorf("tags query failed: %w", err)
			}

			return render(cmd.OutOrStdout(), response, func(w io.Writer) error {
				if err := displayTagsTable(w, response.Results); err != nil {
					return err
				}

				return displayPaging(w, response.Paging)
			})
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "restrict tags to a section id")
	cmd.Flags().StringVar(&tagType, "type", "", "restrict tags to a type")
	cmd.Flags().IntVar(&page, "page", 0, "page number to fetch")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")

	return cmd
}
