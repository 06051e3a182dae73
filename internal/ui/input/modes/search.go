package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"regscope/internal/ui/input/types"
)

// SearchMode edits the query of the current list. Every keystroke is
// reported as an UpdateTextAction so the list filters while typing.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Search: ", ti),
	}
}
