package views

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"regscope/internal/sortfilter"
)

// NumberFormatter renders counts with the locale's digit grouping
type NumberFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter creates a formatter for tag
func NewNumberFormatter(tag language.Tag) *NumberFormatter {
	return &NumberFormatter{printer: message.NewPrinter(tag)}
}

// Format renders n with thousands separators, e.g. 1234567 as "1,234,567"
func (f *NumberFormatter) Format(n int) string {
	return f.printer.Sprintf("%d", n)
}

// SortIndicator returns the arrow shown next to a sort control
func SortIndicator(field sortfilter.Field, st sortfilter.State) string {
	if st.SortKey != field {
		return "⇅"
	}
	if st.Direction == sortfilter.Ascending {
		return "↑"
	}
	return "↓"
}
