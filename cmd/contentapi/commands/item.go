package commands

import (
	"fmt"
	"html"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/microcosm-cc/bluemonday"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

const bodyField = "body"

// openURL is replaced in tests.
var openURL = browser.OpenURL

// NewItemCommand creates the item command.
func NewItemCommand() *cobra.Command {
	var (
		showFields []string
		showTags   []string
		body       bool
		open       bool
	)

	cmd := &cobra.Command{
		Use:   "item ID_OR_URL",
		Short: "Fetch a single item",
		Long: `Fetch a single content item, section or tag by id (e.g.
technology/2010/mar/05/example) or by the API URL found in earlier results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeClient, err := CreateClient(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeClient()

			query := client.Item()
			if isAbsoluteURL(args[0]) {
				query.WithTargetURL(args[0])
			} else {
				query.WithItemID(args[0])
			}

			fields := showFields
			if body && !slices.Contains(fields, bodyField) {
				fields = append(fields, bodyField)
			}

			if len(fields) > 0 {
				query.WithShowFields(fields...)
			}

			if len(showTags) > 0 {
				query.WithShowTags(showTags...)
			}

			if done, err := printURL(cmd.OutOrStdout(), query); done {
				return err
			}

			response, err := query.Query(cmd.Context())
			if err != nil {
				return fmt.Errorf("item query failed: %w", err)
			}

			if open {
				return openItem(response)
			}

			if body {
				return printBody(cmd.OutOrStdout(), response)
			}

			return render(cmd.OutOrStdout(), response, func(w io.Writer) error {
				return displayItemResponse(w, response)
			})
		},
	}

	cmd.Flags().StringSliceVar(&showFields, "show-fields", nil, "extra fields to include (e.g. headline,byline)")
	cmd.Flags().StringSliceVar(&showTags, "show-tags", nil, "tag types to include (e.g. keyword,contributor)")
	cmd.Flags().BoolVar(&body, "body", false, "print the article body as plain text")
	cmd.Flags().BoolVar(&open, "open", false, "open the item's web page in a browser")

	return cmd
}

func isAbsoluteURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}

func itemWebURL(response *contentapi.ItemResponse) string {
	switch {
	case response.Content != nil:
		return response.Content.WebURL
	case response.Section != nil:
		return response.Section.WebURL
	case response.Tag != nil:
		return response.Tag.WebURL
	default:
		return ""
	}
}

func openItem(response *contentapi.ItemResponse) error {
	webURL := itemWebURL(response)
	if webURL == "" {
		return constants.ErrNoWebURL
	}

	if err := openURL(webURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

// printBody writes the body field with all markup removed.
func printBody(w io.Writer, response *contentapi.ItemResponse) error {
	if response.Content == nil {
		return constants.ErrUnexpectedItemKind
	}

	_, err := fmt.Fprintln(w, plainText(response.Content.Field(bodyField)))

	return err
}

func plainText(markup string) string {
	// Paragraph and line breaks survive as newlines.
	replacer := strings.NewReplacer("</p>", "</p>\n\n", "<br>", "\n", "<br/>", "\n", "<br />", "\n")
	stripped := bluemonday.StrictPolicy().Sanitize(replacer.Replace(markup))

	return strings.TrimSpace(html.UnescapeString(stripped))
}

func displayItemResponse(w io.Writer, response *contentapi.ItemResponse) error {
	switch {
	case response.Content != nil:
		return displayContentDetails(w, response.Content)
	case response.Section != nil:
		if err := displaySectionsTable(w, []contentapi.Section{*response.Section}); err != nil {
			return err
		}
	case response.Tag != nil:
		if err := displayTagsTable(w, []contentapi.Tag{*response.Tag}); err != nil {
			return err
		}
	default:
		return constants.ErrUnexpectedItemKind
	}

	if len(response.Results) == 0 {
		return nil
	}

	if err := displayContentTable(w, response.Results); err != nil {
		return err
	}

	return displayPaging(w, response.Paging)
}

func displayContentDetails(w io.Writer, content *contentapi.Content) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("ID", content.ID)
	_ = table.Append("Title", content.WebTitle)
	_ = table.Append("Section", formatConfigValue(content.SectionName))
	_ = table.Append("Published", formatTime(*content))
	_ = table.Append("Web URL", content.WebURL)
	_ = table.Append("API URL", content.APIURL)

	names := make([]string, 0, len(content.Fields))
	for name := range content.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if name == bodyField {
			continue
		}

		_ = table.Append(name, truncate(plainText(content.Fields[name]), constants.TitleDisplayLength))
	}

	for _, tag := range content.Tags {
		_ = table.Append("tag:"+tag.Type, tag.WebTitle)
	}

	return renderTable(table)
}
