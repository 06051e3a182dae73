package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"regscope/internal/domain"
)

// AgencyRenderer handles rendering of agency rows
type AgencyRenderer struct {
	styles  *Styles
	numbers *NumberFormatter
}

// NewAgencyRenderer creates a new agency row renderer
func NewAgencyRenderer(styles *Styles, numbers *NumberFormatter) *AgencyRenderer {
	return &AgencyRenderer{
		styles:  styles,
		numbers: numbers,
	}
}

// RenderAgency renders one agency row: cursor, name, words, sections
func (r *AgencyRenderer) RenderAgency(agency domain.Agency, isSelected bool, searchQuery string, width int) string {
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}
	base := lipgloss.NewStyle()
	if bgColor != "" {
		base = base.Background(lipgloss.Color(bgColor))
	}

	cursor := "  "
	if isSelected {
		cursor = "▸ "
	}

	words := fmt.Sprintf("%s words", r.numbers.Format(agency.WordCount))
	sections := fmt.Sprintf("%s sections", r.numbers.Format(agency.Sections))
	stats := fmt.Sprintf("%18s  %14s", words, sections)

	if width <= 0 {
		width = 80
	}
	nameWidth := width - lipgloss.Width(cursor) - lipgloss.Width(stats) - 6 // container padding and gap
	if nameWidth < 10 {
		nameWidth = 10
	}
	name := truncate(agency.Name, nameWidth)
	pad := strings.Repeat(" ", nameWidth-lipgloss.Width(name))

	var renderedName string
	if searchQuery != "" {
		renderedName = r.highlightMatch(name, searchQuery, base.Inherit(r.styles.Highlight), base)
	} else {
		renderedName = base.Render(name)
	}

	return base.Render(cursor) + renderedName + base.Render(pad+"  ") + base.Inherit(r.styles.Number).Render(stats)
}

// highlightMatch highlights the first case-insensitive occurrence of query
func (r *AgencyRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	// Byte offsets only line up when lowering kept the encoded length
	if len(lowerText) != len(text) || len(lowerQuery) != len(query) {
		return normalStyle.Render(text)
	}

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}

// truncate shortens s to at most width cells, ending in an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-1 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "…"
}
