package state

import (
	"regscope/internal/domain"
	"regscope/internal/sortfilter"
	"regscope/internal/ui/logic"
)

// Screen identifies the mounted view
type Screen int

const (
	ScreenAgencies Screen = iota
	ScreenAgencyDetail
	ScreenAnalytics
)

func (s Screen) String() string {
	switch s {
	case ScreenAgencies:
		return "agencies"
	case ScreenAgencyDetail:
		return "agency"
	case ScreenAnalytics:
		return "analytics"
	}
	return "unknown"
}

// ListState is a searchable, sortable agency list. It lives exactly as long
// as the view that owns it.
type ListState struct {
	Engine *sortfilter.Engine[domain.Agency]
	Nav    *logic.Navigator
}

// NewListState creates an empty list in the given sort state
func NewListState(initial sortfilter.State, comparer *sortfilter.Comparer) *ListState {
	return &ListState{
		Engine: sortfilter.New[domain.Agency](sortfilter.WithState(initial), sortfilter.WithComparer(comparer)),
		Nav:    logic.NewNavigator(),
	}
}

// Selected returns the agency under the cursor
func (l *ListState) Selected() (domain.Agency, bool) {
	items := l.Engine.Items()
	i := l.Nav.SelectedIndex()
	if i < 0 || i >= len(items) {
		return domain.Agency{}, false
	}
	return items[i], true
}

// SetItems replaces the list contents keeping query, sort and cursor
func (l *ListState) SetItems(items []domain.Agency) {
	l.Engine.SetItems(items)
	l.Nav.Clamp(l.Engine.Len())
}

// SetQuery refilters and moves the cursor back to the top
func (l *ListState) SetQuery(query string) {
	if query == l.Engine.Query() {
		return
	}
	l.Engine.SetQuery(query)
	l.Nav.Reset()
}

// ToggleSort advances the sort state of field and moves the cursor back to
// the top
func (l *ListState) ToggleSort(field sortfilter.Field) {
	l.Engine.ToggleSort(field)
	l.Nav.Reset()
}

// AgenciesView is the mounted agency list
type AgenciesView struct {
	Token   domain.ViewToken
	Loading bool
	List    *ListState
}

// DetailView is the mounted agency detail page
type DetailView struct {
	Token    domain.ViewToken
	Slug     string
	Loading  bool
	Agency   *domain.Agency
	Children *ListState
}

// AnalyticsView is the mounted analytics page
type AnalyticsView struct {
	Token     domain.ViewToken
	Loading   bool
	Analytics *domain.Analytics
}

// Notification is a transient message shown at the bottom of the screen
type Notification struct {
	ID      int
	Message string
}

// AppState contains all the application state. Exactly one of the view
// pointers is non-nil: the one matching Screen.
type AppState struct {
	Screen    Screen
	Agencies  *AgenciesView
	Detail    *DetailView
	Analytics *AnalyticsView

	Notification *Notification

	ShowHelp         bool
	HelpScrollOffset int
}

// NewAppState creates a new application state with nothing mounted
func NewAppState() *AppState {
	return &AppState{}
}

// MountAgencies replaces the mounted view with a fresh agency list
func (s *AppState) MountAgencies(token domain.ViewToken, list *ListState) *AgenciesView {
	s.unmount()
	s.Screen = ScreenAgencies
	s.Agencies = &AgenciesView{Token: token, Loading: true, List: list}
	return s.Agencies
}

// MountDetail replaces the mounted view with a fresh detail page for slug
func (s *AppState) MountDetail(token domain.ViewToken, slug string, children *ListState) *DetailView {
	s.unmount()
	s.Screen = ScreenAgencyDetail
	s.Detail = &DetailView{Token: token, Slug: slug, Loading: true, Children: children}
	return s.Detail
}

// MountAnalytics replaces the mounted view with a fresh analytics page
func (s *AppState) MountAnalytics(token domain.ViewToken) *AnalyticsView {
	s.unmount()
	s.Screen = ScreenAnalytics
	s.Analytics = &AnalyticsView{Token: token, Loading: true}
	return s.Analytics
}

func (s *AppState) unmount() {
	s.Agencies = nil
	s.Detail = nil
	s.Analytics = nil
}

// ActiveToken returns the token of the mounted view, zero if none
func (s *AppState) ActiveToken() domain.ViewToken {
	switch {
	case s.Agencies != nil:
		return s.Agencies.Token
	case s.Detail != nil:
		return s.Detail.Token
	case s.Analytics != nil:
		return s.Analytics.Token
	}
	return 0
}

// Loading reports whether the mounted view is waiting for data
func (s *AppState) Loading() bool {
	switch {
	case s.Agencies != nil:
		return s.Agencies.Loading
	case s.Detail != nil:
		return s.Detail.Loading
	case s.Analytics != nil:
		return s.Analytics.Loading
	}
	return false
}

// ActiveList returns the searchable list of the mounted view, if any
func (s *AppState) ActiveList() *ListState {
	switch {
	case s.Agencies != nil:
		return s.Agencies.List
	case s.Detail != nil && s.Detail.Agency != nil:
		return s.Detail.Children
	}
	return nil
}
