package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// ItemResult is the rendered outcome of one lookup in a batch.
type ItemResult struct {
	Target string                   `json:"target"          yaml:"target"`
	Item   *contentapi.ItemResponse `json:"item,omitempty"  yaml:"item,omitempty"`
	Error  string                   `json:"error,omitempty" yaml:"error,omitempty"`
	Millis int64                    `json:"duration_ms"     yaml:"duration_ms"`
}

// NewItemsCommand creates the items command.
func NewItemsCommand() *cobra.Command {
	var (
		concurrency int
		showFields  []string
	)

	cmd := &cobra.Command{
		Use:   "items ID_OR_URL...",
		Short: "Fetch several items concurrently",
		Long:  "Fetch several content items, sections or tags concurrently. Each argument is an id or an API URL.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			builder := contentapi.NewBatchBuilder()
			for _, arg := range args {
				if isAbsoluteURL(arg) {
					builder.AddItemURL(arg, arg)
				} else {
					builder.AddItemID(arg, arg)
				}
			}

			executor := contentapi.NewBatchExecutor(client, concurrency)
			if len(showFields) > 0 {
				executor.SetQueryOptions(func(q *contentapi.ItemQuery) {
					q.WithShowFields(showFields...)
				})
			}

			results, err := executor.Execute(cmd.Context(), builder.Build())
			if err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}

			rendered := make([]ItemResult, 0, len(results))
			failures := 0

			for _, result := range results {
				item := ItemResult{Target: result.ID, Item: result.Response, Millis: result.Duration.Milliseconds()}
				if result.Error != nil {
					item.Error = result.Error.Error()
					failures++
				}

				rendered = append(rendered, item)
			}

			err = render(cmd.OutOrStdout(), rendered, func(w io.Writer) error {
				return displayItemResultsTable(w, rendered)
			})
			if err != nil {
				return err
			}

			if failures > 0 {
				return fmt.Errorf("%w: %d of %d", constants.ErrItemsFailed, failures, len(results))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", constants.DefaultBatchConcurrency, "maximum concurrent lookups")
	cmd.Flags().StringSliceVar(&showFields, "show-fields", nil, "extra fields to include")

	return cmd
}

func displayItemResultsTable(w io.Writer, results []ItemResult) error {
	table := tablewriter.NewWriter(w)
	table.Header("Target", "Title", "Duration (ms)", "Error")

	for _, result := range results {
		title := constants.NotAvailable
		if result.Item != nil {
			title = itemTitle(result.Item)
		}

		_ = table.Append(result.Target, truncate(title, constants.TitleDisplayLength), strconv.FormatInt(result.Millis, 10), result.Error)
	}

	return renderTable(table)
}

func itemTitle(response *contentapi.ItemResponse) string {
	switch {
	case response.Content != nil:
		return response.Content.WebTitle
	case response.Section != nil:
		return response.Section.WebTitle
	case response.Tag != nil:
		return response.Tag.WebTitle
	default:
		return constants.NotAvailable
	}
}
