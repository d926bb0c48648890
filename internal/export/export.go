package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/fr0stylo/ghevents/internal/app/domain"
)

// Format selects how records are written.
type Format string

const (
	FormatTable       Format = "table"
	FormatJSON        Format = "json"
	FormatCloudEvents Format = "cloudevents"
	FormatCDEvents    Format = "cdevents"
)

// DefaultSource is the event source used when none is configured.
const DefaultSource = "ghevents/github-webhook-receiver"

// ParseFormat resolves a --format flag value.
func ParseFormat(value string) (Format, error) {
	switch format := Format(strings.ToLower(strings.TrimSpace(value))); format {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatCloudEvents, FormatCDEvents:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want table, json, cloudevents or cdevents)", value)
	}
}

// Writer renders event records to an output stream.
type Writer struct {
	out    io.Writer
	format Format
	source string
}

// NewWriter constructs a record writer. An empty source uses DefaultSource.
func NewWriter(out io.Writer, format Format, source string) *Writer {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}
	return &Writer{out: out, format: format, source: source}
}

// Write renders records. JSON-based formats emit one document per line.
func (w *Writer) Write(records []domain.EventRecord) error {
	switch w.format {
	case FormatTable, "":
		return w.writeTable(records)
	case FormatJSON:
		return w.writeLines(records, func(record domain.EventRecord) ([]byte, error) {
			return json.Marshal(record.Document())
		})
	case FormatCloudEvents:
		return w.writeLines(records, func(record domain.EventRecord) ([]byte, error) {
			return CloudEvent(record, w.source)
		})
	case FormatCDEvents:
		return w.writeLines(records, func(record domain.EventRecord) ([]byte, error) {
			return CDEvent(record, w.source)
		})
	default:
		return fmt.Errorf("unsupported format %q", w.format)
	}
}

func (w *Writer) writeLines(records []domain.EventRecord, encode func(domain.EventRecord) ([]byte, error)) error {
	for _, record := range records {
		line, err := encode(record)
		if err != nil {
			return fmt.Errorf("encode %s: %w", record.RequestID, err)
		}
		if _, err := fmt.Fprintln(w.out, string(line)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeTable(records []domain.EventRecord) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("REQUEST ID", "ACTION", "AUTHOR", "FROM", "TO", "TIMESTAMP")
	for _, record := range records {
		doc := record.Document()
		t.Row(doc.RequestID, doc.Action.String(), doc.Author, doc.FromBranch, doc.ToBranch, doc.Timestamp)
	}
	_, err := fmt.Fprintln(w.out, t.Render())
	return err
}
