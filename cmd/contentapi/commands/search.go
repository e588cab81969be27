package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/spf13/cobra"
)

type searchFlags struct {
	page            int
	pageSize        int
	section         string
	tag             string
	orderBy         string
	from            string
	to              string
	showFields      []string
	showTags        []string
	showRefinements []string
	refinementSize  int
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:     "search [TERMS...]",
		Aliases: []string{"s"},
		Short:   "Search published content",
		Long: `Search published content. Terms are joined with spaces and may use AND, OR
and NOT. Dates accept most common formats, e.g. "2010-03-05", "5 March 2010"
or "03/05/2010".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			query, err := buildSearchQuery(client, flags, args)
			if err != nil {
				return err
			}

			if done, err := printURL(cmd.OutOrStdout(), query); done {
				return err
			}

			response, err := query.Search(cmd.Context())
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			return render(cmd.OutOrStdout(), response, func(w io.Writer) error {
				return displaySearchResponse(w, response)
			})
		},
	}

	cmd.Flags().IntVar(&flags.page, "page", 0, "page number to fetch")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "results per page")
	cmd.Flags().StringVar(&flags.section, "section", "", "restrict results to a section id")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "restrict results to a tag id")
	cmd.Flags().StringVar(&flags.orderBy, "order-by", "", "result order (newest, oldest, relevance)")
	cmd.Flags().StringVar(&flags.from, "from", "", "earliest publication date")
	cmd.Flags().StringVar(&flags.to, "to", "", "latest publication date")
	cmd.Flags().StringSliceVar(&flags.showFields, "show-fields", nil, "extra fields to include (e.g. headline,trail-text)")
	cmd.Flags().StringSliceVar(&flags.showTags, "show-tags", nil, "tag types to include (e.g. keyword,contributor)")
	cmd.Flags().StringSliceVar(&flags.showRefinements, "show-refinements", nil, "refinement groups to include")
	cmd.Flags().IntVar(&flags.refinementSize, "refinement-size", 0, "refinements per group")

	return cmd
}

func buildSearchQuery(client *contentapi.Client, flags *searchFlags, args []string) (*contentapi.SearchQuery, error) {
	query := client.Search()

	if len(args) > 0 {
		query.WithQueryTerm(strings.Join(args, " "))
	}

	if flags.page > 0 {
		query.WithPage(flags.page)
	}

	if flags.pageSize > 0 {
		query.WithPageSize(flags.pageSize)
	}

	if flags.section != "" {
		query.WithSection(flags.section)
	}

	if flags.tag != "" {
		query.WithTag(flags.tag)
	}

	if flags.orderBy != "" {
		order, err := parseOrderBy(flags.orderBy)
		if err != nil {
			return nil, err
		}

		query.WithOrderBy(order)
	}

	if flags.from != "" {
		from, err := parseDateFlag("from", flags.from)
		if err != nil {
			return nil, err
		}

		query.WithFromTime(from)
	}

	if flags.to != "" {
		to, err := parseDateFlag("to", flags.to)
		if err != nil {
			return nil, err
		}

		query.WithToTime(to)
	}

	if len(flags.showFields) > 0 {
		query.WithShowFields(flags.showFields...)
	}

	if len(flags.showTags) > 0 {
		query.WithShowTags(flags.showTags...)
	}

	if len(flags.showRefinements) > 0 {
		query.WithShowRefinements(flags.showRefinements...)
	}

	if flags.refinementSize > 0 {
		query.WithRefinementSize(flags.refinementSize)
	}

	return query, nil
}

func parseOrderBy(value string) (contentapi.OrderBy, error) {
	switch order := contentapi.OrderBy(value); order {
	case contentapi.OrderByNewest, contentapi.OrderByOldest, contentapi.OrderByRelevance:
		return order, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOrderBy, value)
	}
}

func parseDateFlag(name, value string) (time.Time, error) {
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w for --%s %q: %w", constants.ErrInvalidDateFlag, name, value, err)
	}

	return parsed, nil
}

func displaySearchResponse(w io.Writer, response *contentapi.SearchResponse) error {
	if err := displayContentTable(w, response.Results); err != nil {
		return err
	}

	if err := displayRefinementsTable(w, response.RefinementGroups); err != nil {
		return err
	}

	return displayPaging(w, response.Paging)
}
