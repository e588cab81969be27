package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func parseOutputFormat(value string) (string, error) {
	switch value {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return value, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFlag, value)
	}
}

// render writes data in the format selected by --output. table renders the
// default view.
func render(w io.Writer, data interface{}, table func(io.Writer) error) error {
	format, err := parseOutputFormat(viper.GetString("output"))
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	default:
		return table(w)
	}
}

func renderTable(table *tablewriter.Table) error {
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func displayContentTable(w io.Writer, results []contentapi.Content) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Section", "Published")

	for _, content := range results {
		_ = table.Append(
			content.ID,
			truncate(content.WebTitle, constants.TitleDisplayLength),
			formatConfigValue(content.SectionName),
			formatTime(content),
		)
	}

	return renderTable(table)
}

func displaySectionsTable(w io.Writer, results []contentapi.Section) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "URL")

	for _, section := range results {
		_ = table.Append(section.ID, section.WebTitle, section.WebURL)
	}

	return renderTable(table)
}

func displayTagsTable(w io.Writer, results []contentapi.Tag) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Type", "Title", "Section")

	for _, tag := range results {
		_ = table.Append(tag.ID, tag.Type, truncate(tag.WebTitle, constants.TitleDisplayLength), formatConfigValue(tag.SectionName))
	}

	return renderTable(table)
}

func displayRefinementsTable(w io.Writer, groups []contentapi.RefinementGroup) error {
	if len(groups) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Group", "ID", "Name", "Count")

	for _, group := range groups {
		for _, refinement := range group.Refinements {
			_ = table.Append(group.Type, refinement.ID, refinement.DisplayName, strconv.Itoa(refinement.Count))
		}
	}

	return renderTable(table)
}

func displayPaging(w io.Writer, paging contentapi.Paging) error {
	_, err := fmt.Fprintf(w, "Page %d of %d (%d results)\n", paging.CurrentPage, paging.Pages, paging.Total)

	return err
}

func formatTime(content contentapi.Content) string {
	if content.WebPublicationDate.IsZero() {
		return constants.NotAvailable
	}

	return content.WebPublicationDate.Format(constants.DisplayTimeLayout)
}

func truncate(value string, length int) string {
	runes := []rune(value)
	if len(runes) <= length {
		return value
	}

	return string(runes[:length-3]) + "..."
}
