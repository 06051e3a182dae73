package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"regscope/internal/sortfilter"
	"regscope/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys

	if key.Matches(msg, k.ForceQuit) {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	// The help overlay swallows everything except scrolling and closing
	if ctx.ShowingHelp() {
		switch {
		case key.Matches(msg, k.Up):
			return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
		case key.Matches(msg, k.Down):
			return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
		case key.Matches(msg, k.Help), key.Matches(msg, k.Back), key.Matches(msg, k.Quit):
			return []types.Action{types.ToggleHelpAction{}}, true
		}
		return nil, true
	}

	switch {
	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{}}, true
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, k.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, k.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case key.Matches(msg, k.Open):
		if ctx.CanOpen() {
			return []types.Action{types.OpenAction{}}, true
		}
		return nil, false
	case key.Matches(msg, k.Back):
		if ctx.CanGoBack() {
			return []types.Action{types.BackAction{}}, true
		}
		return nil, false
	case key.Matches(msg, k.SwitchTab):
		return []types.Action{types.SwitchTabAction{}}, true
	case key.Matches(msg, k.Reload):
		return []types.Action{types.ReloadAction{}}, true
	}

	if !ctx.Searchable() {
		return nil, false
	}

	switch {
	case key.Matches(msg, k.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.Query()}}, true
	case key.Matches(msg, k.SortName):
		return []types.Action{types.ToggleSortAction{Field: sortfilter.FieldName}}, true
	case key.Matches(msg, k.SortWords):
		return []types.Action{types.ToggleSortAction{Field: sortfilter.FieldWordCount}}, true
	case key.Matches(msg, k.SortSections):
		return []types.Action{types.ToggleSortAction{Field: sortfilter.FieldSections}}, true
	}

	return nil, false
}
