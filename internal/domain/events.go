package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventAgenciesRequested  EventType = "AgenciesRequested"
	EventAgencyRequested    EventType = "AgencyRequested"
	EventAnalyticsRequested EventType = "AnalyticsRequested"
	EventAgenciesLoaded     EventType = "AgenciesLoaded"
	EventAgencyLoaded       EventType = "AgencyLoaded"
	EventAnalyticsLoaded    EventType = "AnalyticsLoaded"
	EventLoadFailed         EventType = "LoadFailed"
)

// Resource names what a load request was for
type Resource string

const (
	ResourceAgencies  Resource = "agencies"
	ResourceAgency    Resource = "agency"
	ResourceAnalytics Resource = "analytics"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// AgenciesRequestedEvent asks for the top-level agency list
type AgenciesRequestedEvent struct {
	Token ViewToken
}

func (e AgenciesRequestedEvent) Type() EventType { return EventAgenciesRequested }

// AgencyRequestedEvent asks for one agency and its children
type AgencyRequestedEvent struct {
	Token ViewToken
	Slug  string
}

func (e AgencyRequestedEvent) Type() EventType { return EventAgencyRequested }

// AnalyticsRequestedEvent asks for totals and correction counts
type AnalyticsRequestedEvent struct {
	Token ViewToken
}

func (e AnalyticsRequestedEvent) Type() EventType { return EventAnalyticsRequested }

// AgenciesLoadedEvent carries a fetched agency list
type AgenciesLoadedEvent struct {
	Token    ViewToken
	Agencies []Agency
}

func (e AgenciesLoadedEvent) Type() EventType { return EventAgenciesLoaded }

// AgencyLoadedEvent carries a fetched agency with its children
type AgencyLoadedEvent struct {
	Token  ViewToken
	Detail AgencyDetail
}

func (e AgencyLoadedEvent) Type() EventType { return EventAgencyLoaded }

// AnalyticsLoadedEvent carries fetched analytics data
type AnalyticsLoadedEvent struct {
	Token     ViewToken
	Analytics Analytics
}

func (e AnalyticsLoadedEvent) Type() EventType { return EventAnalyticsLoaded }

// LoadFailedEvent is emitted when a fetch fails
type LoadFailedEvent struct {
	Token    ViewToken
	Resource Resource
	NotFound bool
	Err      error
}

func (e LoadFailedEvent) Type() EventType { return EventLoadFailed }
