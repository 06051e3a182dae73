package input

import (
	"regscope/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	if list := c.State.ActiveList(); list != nil {
		return list.Nav.SelectedIndex()
	}
	return 0
}

// TotalItems returns the number of rows in the derived list
func (c *ModelContext) TotalItems() int {
	if list := c.State.ActiveList(); list != nil {
		return list.Engine.Len()
	}
	return 0
}

// Searchable reports whether the mounted view has a query and sort controls
func (c *ModelContext) Searchable() bool {
	return c.State.ActiveList() != nil
}

// CanOpen is true on the agency list when the cursor is on a row
func (c *ModelContext) CanOpen() bool {
	if c.State.Screen != state.ScreenAgencies || c.State.Agencies == nil {
		return false
	}
	_, ok := c.State.Agencies.List.Selected()
	return ok
}

// CanGoBack is true on screens reached from the agency list
func (c *ModelContext) CanGoBack() bool {
	return c.State.Screen == state.ScreenAgencyDetail
}

// Query returns the query of the mounted list
func (c *ModelContext) Query() string {
	if list := c.State.ActiveList(); list != nil {
		return list.Engine.Query()
	}
	return ""
}

// ShowingHelp reports whether the help overlay is open
func (c *ModelContext) ShowingHelp() bool {
	return c.State.ShowHelp
}
