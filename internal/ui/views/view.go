package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"

	"regscope/internal/domain"
	"regscope/internal/sortfilter"
)

// Page identifies which screen is rendered
type Page int

const (
	PageAgencies Page = iota
	PageAgencyDetail
	PageAnalytics
)

// Messages shown in place of an empty list or a missing record
const (
	NoAgenciesMessage      = "No agencies found matching your search."
	NoChildMatchesMessage  = "No child agencies found matching your search."
	NoChildrenMessage      = "This agency has no child agencies."
	AgencyNotFoundMessage  = "Agency not found"
	NoAnalyticsMessage     = "No analytics data available."
	searchPlaceholderLabel = "Press / to search"
)

// ListView is the visible slice of a searchable agency list
type ListView struct {
	Rows      []domain.Agency
	Selected  int // index into Rows, -1 if the cursor is not visible
	Above     int
	Below     int
	Total     int // rows after filtering
	Source    int // rows before filtering
	Query     string
	SortState sortfilter.State
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Page             Page
	Loading          bool
	Spinner          string
	Searching        bool
	SearchInput      string
	List             *ListView
	Agency           *domain.Agency
	Analytics        *domain.Analytics
	Notification     string
	HelpBar          string
	ShowHelp         bool
	HelpContent      string
	HelpScrollOffset int
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	numbers        *NumberFormatter
	agencyRender   *AgencyRenderer
	analyticRender *AnalyticsRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer formatting numbers for tag
func NewRenderer(tag language.Tag) *Renderer {
	styles := NewStyles()
	numbers := NewNumberFormatter(tag)
	return &Renderer{
		styles:         styles,
		numbers:        numbers,
		agencyRender:   NewAgencyRenderer(styles, numbers),
		analyticRender: NewAnalyticsRenderer(styles, numbers),
		popupRender:    NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.HelpContent, state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopup(helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	switch state.Page {
	case PageAgencies:
		content.WriteString(r.renderAgencies(state))
	case PageAgencyDetail:
		content.WriteString(r.renderDetail(state))
	case PageAnalytics:
		content.WriteString(r.renderAnalytics(state))
	}

	// Push the notification and help bar to the bottom
	footer := []string{}
	if state.Notification != "" {
		footer = append(footer, r.styles.Notification.Render(state.Notification))
	}
	if state.HelpBar != "" {
		footer = append(footer, state.HelpBar)
	}
	if len(footer) > 0 {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2 // container padding
		if availableLines <= 0 {
			availableLines = 22
		}
		paddingNeeded := availableLines - currentLines - len(footer)
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(footer, "\n"))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderTitleLine renders the logo, the tabs and a right-aligned spinner
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("regscope")

	agenciesTab, analyticsTab := r.styles.TabActive, r.styles.TabInactive
	if state.Page == PageAnalytics {
		agenciesTab, analyticsTab = r.styles.TabInactive, r.styles.TabActive
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top,
		logo, "  ",
		agenciesTab.Render("Agencies"), " ",
		analyticsTab.Render("Analytics"),
	)

	if !state.Loading {
		return left
	}

	right := r.styles.Loading.Render(strings.TrimSpace(state.Spinner + " Loading"))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return left + strings.Repeat(" ", paddingWidth) + right
}

func (r *Renderer) renderAgencies(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Heading.Render("Agencies"))
	b.WriteString("\n")

	list := state.List
	if list == nil {
		return b.String()
	}
	b.WriteString(r.renderControls(state, list))
	b.WriteString("\n\n")

	switch {
	case state.Loading && list.Source == 0:
		b.WriteString(r.styles.Loading.Render(strings.TrimSpace(state.Spinner + " Loading agencies...")))
	case list.Total == 0:
		b.WriteString(r.styles.Empty.Render(NoAgenciesMessage))
	default:
		b.WriteString(r.renderList(list, state.Width))
	}
	return b.String()
}

func (r *Renderer) renderDetail(state ViewState) string {
	var b strings.Builder

	if state.Agency == nil {
		if state.Loading {
			b.WriteString(r.styles.Loading.Render(strings.TrimSpace(state.Spinner + " Loading agency...")))
		} else {
			b.WriteString(r.styles.Empty.Render(AgencyNotFoundMessage))
		}
		return b.String()
	}

	agency := state.Agency
	b.WriteString(r.styles.Heading.Render(agency.Name))
	b.WriteString("\n")

	childCount := 0
	if state.List != nil {
		childCount = state.List.Source
	}
	stats := fmt.Sprintf("Total Words: %s  ·  Total Sections: %s  ·  Child Agencies: %s",
		r.numbers.Format(agency.WordCount),
		r.numbers.Format(agency.Sections),
		r.numbers.Format(childCount))
	b.WriteString(r.styles.Dim.Render(stats))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Heading.Render("Child Agencies"))
	b.WriteString("\n")

	list := state.List
	if list == nil || list.Source == 0 {
		b.WriteString(r.styles.Empty.Render(NoChildrenMessage))
		return b.String()
	}

	b.WriteString(r.renderControls(state, list))
	b.WriteString("\n\n")
	if list.Total == 0 {
		b.WriteString(r.styles.Empty.Render(NoChildMatchesMessage))
	} else {
		b.WriteString(r.renderList(list, state.Width))
	}
	return b.String()
}

func (r *Renderer) renderAnalytics(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Heading.Render("Analytics"))
	b.WriteString("\n\n")

	if state.Analytics == nil {
		if state.Loading {
			b.WriteString(r.styles.Loading.Render(strings.TrimSpace(state.Spinner + " Loading analytics...")))
		} else {
			b.WriteString(r.styles.Empty.Render(NoAnalyticsMessage))
		}
		return b.String()
	}

	b.WriteString(r.analyticRender.RenderCards(state.Analytics.Totals))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Heading.Render("Corrections per Year"))
	b.WriteString("\n")
	b.WriteString(r.analyticRender.RenderCorrectionsChart(state.Analytics.Corrections, state.Width))
	return b.String()
}

// renderControls renders the search line and the sort buttons
func (r *Renderer) renderControls(state ViewState, list *ListView) string {
	var search string
	switch {
	case state.Searching:
		search = r.styles.Search.Render("Search: ") + state.SearchInput
	case list.Query != "":
		search = r.styles.Search.Render(fmt.Sprintf("Search: %s", list.Query)) +
			r.styles.Dim.Render(fmt.Sprintf("  (%d of %d)", list.Total, list.Source))
	default:
		search = r.styles.Dim.Render(searchPlaceholderLabel)
	}

	buttons := make([]string, 0, 3)
	for _, b := range []struct {
		field sortfilter.Field
		label string
	}{
		{sortfilter.FieldName, "Name"},
		{sortfilter.FieldWordCount, "Words"},
		{sortfilter.FieldSections, "Sections"},
	} {
		text := fmt.Sprintf("%s %s", b.label, SortIndicator(b.field, list.SortState))
		if list.SortState.SortKey == b.field {
			buttons = append(buttons, r.styles.SortActive.Render(text))
		} else {
			buttons = append(buttons, r.styles.SortInactive.Render(text))
		}
	}

	return search + "\n" + r.styles.Dim.Render("Sort: ") + strings.Join(buttons, "  ")
}

// renderList renders the visible rows with scroll indicators
func (r *Renderer) renderList(list *ListView, width int) string {
	lines := make([]string, 0, len(list.Rows)+2)
	if list.Above > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", list.Above)))
	}
	for i, agency := range list.Rows {
		lines = append(lines, r.agencyRender.RenderAgency(agency, i == list.Selected, list.Query, width))
	}
	if list.Below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", list.Below)))
	}
	return strings.Join(lines, "\n")
}

// renderHelpContent windows pre-rendered help text to the popup height
func (r *Renderer) renderHelpContent(content string, height int, scrollOffset int) string {
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 4
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		if endLine > totalLines {
			endLine = totalLines
		}
		lines = append([]string(nil), lines[scrollOffset:endLine]...)

		if scrollOffset > 0 {
			lines[0] = r.styles.Scroll.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}
