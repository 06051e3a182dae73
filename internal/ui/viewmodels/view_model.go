package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"regscope/internal/ui/input/types"
	"regscope/internal/ui/state"
	"regscope/internal/ui/views"
)

// chromeLines is the number of lines around a list: title, headings,
// search and sort controls, footer and container padding
const (
	agencyChromeLines = 12
	detailChromeLines = 15
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state       *state.AppState
	width       int
	height      int
	help        help.Model
	keys        types.KeyMap
	spinner     string
	textInput   *textinput.Model
	helpContent string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, keys types.KeyMap) *ViewModel {
	return &ViewModel{
		state: appState,
		help:  help.New(),
		keys:  keys,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// ListHeight is the number of lines a list may use on the current screen
func (vm *ViewModel) ListHeight(screen state.Screen) int {
	chrome := agencyChromeLines
	if screen == state.ScreenAgencyDetail {
		chrome = detailChromeLines
	}
	height := vm.height - chrome
	if height < 3 {
		height = 3
	}
	return height
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetTextInput sets the active text input, nil outside search mode
func (vm *ViewModel) SetTextInput(ti *textinput.Model) {
	vm.textInput = ti
}

// SetHelpContent sets the rendered help screen text
func (vm *ViewModel) SetHelpContent(content string) {
	vm.helpContent = content
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	s := vm.state
	vs := views.ViewState{
		Width:            vm.width,
		Height:           vm.height,
		Loading:          s.Loading(),
		Spinner:          vm.spinner,
		ShowHelp:         s.ShowHelp,
		HelpContent:      vm.helpContent,
		HelpScrollOffset: s.HelpScrollOffset,
		HelpBar:          vm.help.View(vm.keys),
	}
	if s.Notification != nil {
		vs.Notification = s.Notification.Message
	}
	if vm.textInput != nil {
		vs.Searching = true
		vs.SearchInput = vm.textInput.View()
	}

	switch s.Screen {
	case state.ScreenAgencies:
		vs.Page = views.PageAgencies
		if s.Agencies != nil {
			vs.List = buildListView(s.Agencies.List)
		}
	case state.ScreenAgencyDetail:
		vs.Page = views.PageAgencyDetail
		if s.Detail != nil {
			vs.Agency = s.Detail.Agency
			if s.Detail.Agency != nil {
				vs.List = buildListView(s.Detail.Children)
			}
		}
	case state.ScreenAnalytics:
		vs.Page = views.PageAnalytics
		if s.Analytics != nil {
			vs.Analytics = s.Analytics.Analytics
		}
	}
	return vs
}

func buildListView(list *state.ListState) *views.ListView {
	if list == nil {
		return nil
	}
	items := list.Engine.Items()
	start, end, above, below := list.Nav.Window(len(items))
	selected := list.Nav.SelectedIndex() - start
	if selected < 0 || selected >= end-start {
		selected = -1
	}
	return &views.ListView{
		Rows:      items[start:end],
		Selected:  selected,
		Above:     above,
		Below:     below,
		Total:     len(items),
		Source:    list.Engine.Total(),
		Query:     list.Engine.Query(),
		SortState: list.Engine.State(),
	}
}
