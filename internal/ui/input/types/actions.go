package types

import "regscope/internal/sortfilter"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Sort actions
type ToggleSortAction struct {
	Field sortfilter.Field
}

func (a ToggleSortAction) Type() string { return "toggle_sort" }

// Screen actions
type OpenAction struct{}

func (a OpenAction) Type() string { return "open" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type SwitchTabAction struct{}

func (a SwitchTabAction) Type() string { return "switch_tab" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ScrollHelpAction struct {
	Delta int
}

func (a ScrollHelpAction) Type() string { return "scroll_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
