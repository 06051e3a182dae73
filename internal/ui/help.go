package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"regscope/internal/ui/input/types"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

var helpSections = []string{"Navigation", "Screens", "Search & Sort", "Other"}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys types.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent renders the help screen shown inside the app
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(10)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("regscope Help"))
	help.WriteString("\n")

	for i, group := range r.keys.FullHelp() {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(helpSections[i]))
		help.WriteString("\n")
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("Sorting cycles ascending, descending, then unsorted."))

	return strings.TrimRight(help.String(), "\n")
}

// HelpMarkdown returns the help screen as markdown for the pager
func (r *HelpRenderer) HelpMarkdown() string {
	var md strings.Builder
	md.WriteString("# regscope Help\n\n")
	md.WriteString("Browse agencies and their regulation statistics.\n\n")

	for i, group := range r.keys.FullHelp() {
		md.WriteString(fmt.Sprintf("## %s\n\n", helpSections[i]))
		md.WriteString("| Key | Action |\n|-----|--------|\n")
		for _, b := range group {
			h := b.Help()
			md.WriteString(fmt.Sprintf("| `%s` | %s |\n", h.Key, h.Desc))
		}
		md.WriteString("\n")
	}

	md.WriteString("## Sorting\n\n")
	md.WriteString("Pressing a sort key on a new column sorts ascending. ")
	md.WriteString("Pressing it again sorts descending, and a third time restores the API order.\n\n")
	md.WriteString("## Search\n\n")
	md.WriteString("Typing after `/` filters names case-insensitively as you type. ")
	md.WriteString("`enter` keeps the query, `esc` clears it.\n")
	return md.String()
}

// RenderHelpMarkdown renders the help markdown for a terminal of the given
// width
func (r *HelpRenderer) RenderHelpMarkdown(width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(r.HelpMarkdown())
}

// pagerCommand runs the ov pager over fixed content. It implements
// tea.ExecCommand so Bubble Tea releases the terminal while it runs.
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ov opens the terminal itself
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showHelpInPager returns a command that shows help using the ov pager
func (m *Model) showHelpInPager() tea.Cmd {
	content, err := m.helpRenderer.RenderHelpMarkdown(m.width)
	if err != nil {
		return func() tea.Msg { return helpPagerMsg{err: err} }
	}
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
