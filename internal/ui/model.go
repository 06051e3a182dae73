package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"regscope/internal/config"
	"regscope/internal/domain"
	"regscope/internal/eventbus"
	"regscope/internal/sortfilter"
	"regscope/internal/ui/input"
	inputtypes "regscope/internal/ui/input/types"
	"regscope/internal/ui/state"
	"regscope/internal/ui/viewmodels"
	"regscope/internal/ui/views"
)

// Notification texts for failed loads
const (
	agenciesFailedMessage  = "Failed to load agencies. Please try again later."
	agencyFailedMessage    = "Failed to load agency details. Please try again later."
	analyticsFailedMessage = "Failed to load analytics data. Please try again later."
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	logger *zap.Logger
	state  *state.AppState // centralized state

	width   int
	height  int
	keys    inputtypes.KeyMap
	spinner spinner.Model

	// Every list view starts from the configured sort and shares one collator
	initialSort sortfilter.State
	comparer    *sortfilter.Comparer

	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	helpRenderer *HelpRenderer

	lastToken      domain.ViewToken
	notificationID int
}

// NewModel creates a new UI model. Results for a view arrive as EventMsg
// values that the caller forwards from the bus.
func NewModel(bus eventbus.EventBus, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	initialSort, err := cfg.InitialSortState()
	if err != nil {
		logger.Warn("invalid default sort, using word_count desc", zap.Error(err))
		initialSort = sortfilter.DefaultState()
	}

	keys := inputtypes.DefaultKeyMap()
	appState := state.NewAppState()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		bus:          bus,
		config:       cfg,
		logger:       logger.Named("ui"),
		state:        appState,
		keys:         keys,
		spinner:      sp,
		initialSort:  initialSort,
		comparer:     sortfilter.NewComparer(cfg.Language()),
		renderer:     views.NewRenderer(cfg.Language()),
		viewModel:    viewmodels.NewViewModel(appState, keys),
		inputHandler: input.New(keys),
		helpRenderer: NewHelpRenderer(keys),
	}
}

// Init mounts the agency list and starts the spinner
func (m *Model) Init() tea.Cmd {
	m.mountAgencies()
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.syncViewport()
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		cmd := m.handleEvent(msg.Event)
		m.syncViewport()
		return m, cmd

	case clearNotificationMsg:
		if m.state.Notification != nil && m.state.Notification.ID == msg.id {
			m.state.Notification = nil
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed, showing inline help", zap.Error(msg.err))
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}
		return m, nil

	default:
		// Cursor blink for the search box
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetTextInput(m.inputHandler.TextInput())
	if m.state.ShowHelp {
		m.viewModel.SetHelpContent(m.helpRenderer.RenderHelpContent())
	}

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("action", zap.String("type", action.Type()), zap.Stringer("screen", m.state.Screen))

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		list := m.state.ActiveList()
		if list == nil {
			return nil
		}
		total := list.Engine.Len()
		switch a.Direction {
		case "up":
			list.Nav.Move(-1, total)
		case "down":
			list.Nav.Move(1, total)
		case "pageup":
			list.Nav.PageUp(total)
		case "pagedown":
			list.Nav.PageDown(total)
		case "home":
			list.Nav.Home(total)
		case "end":
			list.Nav.End(total)
		}

	case inputtypes.UpdateTextAction:
		m.setQuery(a.Text)

	case inputtypes.SubmitTextAction:
		m.setQuery(a.Text)

	case inputtypes.CancelTextAction:
		m.setQuery("")

	case inputtypes.ToggleSortAction:
		if list := m.state.ActiveList(); list != nil {
			list.ToggleSort(a.Field)
			st := list.Engine.State()
			m.logger.Debug("sort changed",
				zap.Stringer("key", st.SortKey),
				zap.Stringer("direction", st.Direction))
		}

	case inputtypes.OpenAction:
		if m.state.Agencies == nil {
			return nil
		}
		if agency, ok := m.state.Agencies.List.Selected(); ok {
			m.mountDetail(agency.Slug)
		}

	case inputtypes.BackAction:
		if m.state.Screen == state.ScreenAgencyDetail {
			m.mountAgencies()
		}

	case inputtypes.SwitchTabAction:
		if m.state.Screen == state.ScreenAnalytics {
			m.mountAgencies()
		} else {
			m.mountAnalytics()
		}

	case inputtypes.ReloadAction:
		m.reload()

	case inputtypes.ToggleHelpAction:
		if m.state.ShowHelp {
			m.state.ShowHelp = false
			return nil
		}
		if m.config.UI.UsePagerForHelp {
			return m.showHelpInPager()
		}
		m.state.ShowHelp = true
		m.state.HelpScrollOffset = 0

	case inputtypes.ScrollHelpAction:
		m.state.HelpScrollOffset += a.Delta
		if m.state.HelpScrollOffset < 0 {
			m.state.HelpScrollOffset = 0
		}

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

func (m *Model) setQuery(query string) {
	if list := m.state.ActiveList(); list != nil {
		list.SetQuery(query)
	}
}

// handleEvent applies a load result to the mounted view. Results carrying
// the token of a view that is no longer mounted are dropped.
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	token, ok := eventToken(event)
	if !ok {
		return nil
	}
	if token != m.state.ActiveToken() {
		m.logger.Debug("dropping stale result",
			zap.String("event", string(event.Type())),
			zap.Uint64("token", uint64(token)),
			zap.Uint64("active", uint64(m.state.ActiveToken())))
		return nil
	}

	switch e := event.(type) {
	case eventbus.AgenciesLoadedEvent:
		view := m.state.Agencies
		view.Loading = false
		view.List.SetItems(e.Agencies)

	case eventbus.AgencyLoadedEvent:
		view := m.state.Detail
		view.Loading = false
		agency := e.Detail.Agency
		view.Agency = &agency
		view.Children.SetItems(e.Detail.Children)

	case eventbus.AnalyticsLoadedEvent:
		view := m.state.Analytics
		view.Loading = false
		analytics := e.Analytics
		view.Analytics = &analytics

	case eventbus.LoadFailedEvent:
		// The last known data stays on screen
		switch e.Resource {
		case domain.ResourceAgencies:
			m.state.Agencies.Loading = false
			return m.notify(agenciesFailedMessage)
		case domain.ResourceAgency:
			m.state.Detail.Loading = false
			if e.NotFound {
				m.state.Detail.Agency = nil
				return nil
			}
			return m.notify(agencyFailedMessage)
		case domain.ResourceAnalytics:
			m.state.Analytics.Loading = false
			return m.notify(analyticsFailedMessage)
		}
	}
	return nil
}

// eventToken extracts the view token from load results
func eventToken(event eventbus.DomainEvent) (domain.ViewToken, bool) {
	switch e := event.(type) {
	case eventbus.AgenciesLoadedEvent:
		return e.Token, true
	case eventbus.AgencyLoadedEvent:
		return e.Token, true
	case eventbus.AnalyticsLoadedEvent:
		return e.Token, true
	case eventbus.LoadFailedEvent:
		return e.Token, true
	}
	return 0, false
}

// notify shows message until the configured notification duration passes
func (m *Model) notify(message string) tea.Cmd {
	m.notificationID++
	id := m.notificationID
	m.state.Notification = &state.Notification{ID: id, Message: message}

	d := m.config.NotificationDuration()
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearNotificationMsg{id: id}
	})
}

func (m *Model) newToken() domain.ViewToken {
	m.lastToken++
	return m.lastToken
}

func (m *Model) newList() *state.ListState {
	return state.NewListState(m.initialSort, m.comparer)
}

func (m *Model) mountAgencies() {
	m.inputHandler.Reset()
	view := m.state.MountAgencies(m.newToken(), m.newList())
	m.publish(eventbus.AgenciesRequestedEvent{Token: view.Token})
}

func (m *Model) mountDetail(slug string) {
	m.inputHandler.Reset()
	view := m.state.MountDetail(m.newToken(), slug, m.newList())
	m.publish(eventbus.AgencyRequestedEvent{Token: view.Token, Slug: slug})
}

func (m *Model) mountAnalytics() {
	m.inputHandler.Reset()
	view := m.state.MountAnalytics(m.newToken())
	m.publish(eventbus.AnalyticsRequestedEvent{Token: view.Token})
}

// reload refetches the mounted view's data. Query, sort and cursor are kept;
// the new token supersedes any fetch still in flight.
func (m *Model) reload() {
	token := m.newToken()
	switch {
	case m.state.Agencies != nil:
		m.state.Agencies.Token = token
		m.state.Agencies.Loading = true
		m.publish(eventbus.AgenciesRequestedEvent{Token: token})
	case m.state.Detail != nil:
		m.state.Detail.Token = token
		m.state.Detail.Loading = true
		m.publish(eventbus.AgencyRequestedEvent{Token: token, Slug: m.state.Detail.Slug})
	case m.state.Analytics != nil:
		m.state.Analytics.Token = token
		m.state.Analytics.Loading = true
		m.publish(eventbus.AnalyticsRequestedEvent{Token: token})
	}
}

func (m *Model) publish(event eventbus.DomainEvent) {
	m.logger.Debug("requesting", zap.String("event", string(event.Type())), zap.Stringer("screen", m.state.Screen))
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// syncViewport fits the mounted list to the terminal height
func (m *Model) syncViewport() {
	if list := m.state.ActiveList(); list != nil {
		list.Nav.SetViewportHeight(m.viewModel.ListHeight(m.state.Screen), list.Engine.Len())
	}
}
