package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"regscope/internal/domain"
)

// Output formats accepted by --output
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatTable, FormatJSON, FormatYAML}

// OutputFormatter writes command results as a table, JSON or YAML
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	printer *message.Printer
}

// NewOutputFormatter validates format and formats table numbers for tag
func NewOutputFormatter(format string, w io.Writer, tag language.Tag) (*OutputFormatter, error) {
	if !isValidFormat(format) {
		return nil, fmt.Errorf("invalid output %q: must be one of %v", format, ValidFormats)
	}
	return &OutputFormatter{
		Format:  format,
		Writer:  w,
		printer: message.NewPrinter(tag),
	}, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Agencies writes an agency list
func (f *OutputFormatter) Agencies(agencies []domain.Agency) error {
	if agencies == nil {
		agencies = []domain.Agency{}
	}
	switch f.Format {
	case FormatJSON:
		return f.json(agencies)
	case FormatYAML:
		return f.yaml(agencies)
	}

	tw := f.table()
	fmt.Fprintln(tw, "NAME\tSLUG\tWORDS\tSECTIONS")
	for _, a := range agencies {
		f.printer.Fprintf(tw, "%s\t%s\t%d\t%d\n", a.Name, a.Slug, a.WordCount, a.Sections)
	}
	return tw.Flush()
}

// AgencyDetail writes one agency followed by its children
func (f *OutputFormatter) AgencyDetail(detail domain.AgencyDetail) error {
	switch f.Format {
	case FormatJSON:
		return f.json(detail)
	case FormatYAML:
		return f.yaml(detail)
	}

	a := detail.Agency
	f.printer.Fprintf(f.Writer, "%s\n", a.Name)
	f.printer.Fprintf(f.Writer, "Total Words: %d  ·  Total Sections: %d  ·  Child Agencies: %d\n\n",
		a.WordCount, a.Sections, len(detail.Children))
	if len(detail.Children) == 0 {
		_, err := fmt.Fprintln(f.Writer, "This agency has no child agencies.")
		return err
	}
	return f.Agencies(detail.Children)
}

// Analytics writes the totals and corrections per year
func (f *OutputFormatter) Analytics(analytics domain.Analytics) error {
	switch f.Format {
	case FormatJSON:
		return f.json(analytics)
	case FormatYAML:
		return f.yaml(analytics)
	}

	tw := f.table()
	t := analytics.Totals
	f.printer.Fprintf(tw, "Total Agencies\t%d\n", t.TotalAgencies)
	f.printer.Fprintf(tw, "Total Sections\t%d\n", t.TotalSections)
	f.printer.Fprintf(tw, "Total Words\t%d\n", t.TotalWords)
	fmt.Fprintln(tw, "\t")
	fmt.Fprintln(tw, "YEAR\tCORRECTIONS")
	for _, c := range analytics.Corrections {
		// Years are not grouped
		f.printer.Fprintf(tw, "%s\t%d\n", fmt.Sprint(c.Year), c.Corrections)
	}
	return tw.Flush()
}

func (f *OutputFormatter) table() *tabwriter.Writer {
	return tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
}

func (f *OutputFormatter) json(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *OutputFormatter) yaml(v any) error {
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
