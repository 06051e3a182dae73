package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"regscope/internal/domain"
)

const maxBarWidth = 50

// AnalyticsRenderer draws the statistics cards and the corrections chart
type AnalyticsRenderer struct {
	styles  *Styles
	numbers *NumberFormatter
}

// NewAnalyticsRenderer creates a new analytics renderer
func NewAnalyticsRenderer(styles *Styles, numbers *NumberFormatter) *AnalyticsRenderer {
	return &AnalyticsRenderer{
		styles:  styles,
		numbers: numbers,
	}
}

// RenderCards renders the three total cards side by side
func (r *AnalyticsRenderer) RenderCards(totals domain.TotalStatistics) string {
	cards := []string{
		r.card("Total Agencies", totals.TotalAgencies),
		r.card("Total Sections", totals.TotalSections),
		r.card("Total Words", totals.TotalWords),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (r *AnalyticsRenderer) card(label string, value int) string {
	body := r.styles.CardLabel.Render(label) + "\n" + r.styles.CardValue.Render(r.numbers.Format(value))
	return r.styles.Card.Render(body)
}

// RenderCorrectionsChart renders corrections per year as horizontal bars
// scaled to the largest year
func (r *AnalyticsRenderer) RenderCorrectionsChart(corrections []domain.CorrectionCount, width int) string {
	if len(corrections) == 0 {
		return r.styles.Empty.Render("No corrections data available.")
	}

	peak := 0
	for _, c := range corrections {
		if c.Corrections > peak {
			peak = c.Corrections
		}
	}

	barWidth := width - 24
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, 0, len(corrections))
	for _, c := range corrections {
		n := 0
		if peak > 0 && c.Corrections > 0 {
			n = c.Corrections * barWidth / peak
			if n == 0 {
				n = 1
			}
		}
		bar := r.styles.Bar.Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%4d │%s %s", c.Year, bar, r.numbers.Format(c.Corrections)))
	}
	return strings.Join(lines, "\n")
}
