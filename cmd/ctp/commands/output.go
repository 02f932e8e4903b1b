package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// OutputFormat returns the effective --output value for w. "auto" selects a
// table on a terminal and JSON otherwise.
func OutputFormat(w io.Writer) (string, error) {
	format := strings.ToLower(strings.TrimSpace(viper.GetString(flagOutput)))
	if format == "" {
		format = constants.FormatAuto
	}

	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return format, nil
	case constants.FormatAuto:
		if isTerminal(w) {
			return constants.FormatTable, nil
		}

		return constants.FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

func isTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", defaultJSONIndent)

	return encoder.Encode(v)
}

func encodeYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	return encoder.Encode(v)
}

// renderPages writes pages in format. Tables get one section per page.
func renderPages(w io.Writer, format string, pages ...*ctp.DisplayPage) error {
	switch format {
	case constants.FormatJSON:
		if len(pages) == 1 {
			return encodeJSON(w, pages[0])
		}

		return encodeJSON(w, pages)
	case constants.FormatYAML:
		if len(pages) == 1 {
			return encodeYAML(w, pages[0])
		}

		return encodeYAML(w, pages)
	case constants.FormatTable:
		for i, page := range pages {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}

			err := renderPageTable(w, page)
			if err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

func renderPageTable(w io.Writer, page *ctp.DisplayPage) error {
	_, _ = fmt.Fprintf(w, "%s: %d total, %d on this page (offset %d)\n\n",
		kindTitle(page.Kind), page.Total, page.Count, page.Offset)

	if len(page.Records) == 0 {
		_, _ = fmt.Fprintf(w, "No %s found\n", page.Kind.Plural())

		return nil
	}

	titleLabel := recordTitleLabel(page.Kind)

	header := []any{"#"}
	if titleLabel != "" {
		header = append(header, titleLabel)
	}

	for _, field := range page.Records[0].Fields() {
		header = append(header, field.Label)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	for i, record := range page.Records {
		row := []string{strconv.Itoa(i + 1)}
		if titleLabel != "" {
			row = append(row, record.Title())
		}

		for _, field := range record.Fields() {
			row = append(row, field.Value)
		}

		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderRecord writes a single record as a property table or document.
func renderRecord(w io.Writer, format string, record ctp.DisplayRecord) error {
	switch format {
	case constants.FormatJSON:
		return encodeJSON(w, record)
	case constants.FormatYAML:
		return encodeYAML(w, record)
	case constants.FormatTable:
		table := tablewriter.NewWriter(w)
		table.Header("Property", "Value")

		if label := recordTitleLabel(record.Kind()); label != "" {
			_ = table.Append(label, record.Title())
		}

		for _, field := range record.Fields() {
			_ = table.Append(field.Label, field.Value)
		}

		_, _ = fmt.Fprintf(w, "%s details:\n\n", kindTitle(record.Kind()))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

// renderRawJSON writes a JSON document. Tables have no generic shape, so
// they fall back to indented JSON. YAML keeps the document's key order.
func renderRawJSON(w io.Writer, format string, body []byte) error {
	if format == constants.FormatYAML {
		var node yaml.Node

		err := yaml.Unmarshal(body, &node)
		if err != nil {
			return fmt.Errorf("parsing response body: %w", err)
		}

		blockStyle(&node)

		return encodeYAML(w, &node)
	}

	var buf bytes.Buffer

	err := json.Indent(&buf, body, "", defaultJSONIndent)
	if err != nil {
		return fmt.Errorf("parsing response body: %w", err)
	}

	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)

	return err
}

// blockStyle drops the JSON look of a decoded document. yaml.v3 quotes
// scalars again where plain style would change their meaning.
func blockStyle(node *yaml.Node) {
	node.Style &^= yaml.FlowStyle
	if node.Kind == yaml.ScalarNode {
		node.Style &^= yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle
	}

	for _, child := range node.Content {
		blockStyle(child)
	}
}

func kindTitle(kind ctp.ResourceKind) string {
	plural := kind.Plural()
	if plural == "" {
		return plural
	}

	return strings.ToUpper(plural[:1]) + plural[1:]
}

func recordTitleLabel(kind ctp.ResourceKind) string {
	switch kind {
	case ctp.KindProduct, ctp.KindCategory:
		return "Name"
	case ctp.KindCustomer:
		return "Full Name"
	default:
		return ""
	}
}
