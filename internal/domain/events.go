package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchIssued     EventType = "SearchIssued"
	EventSearchSuperseded EventType = "SearchSuperseded"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventSearchCleared    EventType = "SearchCleared"
	EventDetailRequested  EventType = "DetailRequested"
	EventDetailCompleted  EventType = "DetailCompleted"
	EventDetailFailed     EventType = "DetailFailed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchIssuedEvent is emitted when a search request goes out to the proxy
type SearchIssuedEvent struct {
	RequestID uint64
	Query     string
	CallCount int
}

func (e SearchIssuedEvent) Type() EventType { return EventSearchIssued }

// SearchSupersededEvent is emitted when an outstanding request is cancelled by a newer one
type SearchSupersededEvent struct {
	RequestID uint64
	Query     string
}

func (e SearchSupersededEvent) Type() EventType { return EventSearchSuperseded }

// SearchCompletedEvent is emitted when the current request commits its results
type SearchCompletedEvent struct {
	RequestID uint64
	Query     string
	Results   int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when the current request commits an error
type SearchFailedEvent struct {
	RequestID uint64
	Query     string
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchClearedEvent is emitted when the query drops below the minimum length
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// DetailRequestedEvent is emitted when a detail fetch is issued
type DetailRequestedEvent struct {
	RequestID   uint64
	CharacterID int
}

func (e DetailRequestedEvent) Type() EventType { return EventDetailRequested }

// DetailCompletedEvent is emitted when a detail record is committed
type DetailCompletedEvent struct {
	RequestID   uint64
	CharacterID int
	Name        string
}

func (e DetailCompletedEvent) Type() EventType { return EventDetailCompleted }

// DetailFailedEvent is emitted when the current detail fetch commits an error
type DetailFailedEvent struct {
	RequestID   uint64
	CharacterID int
	Err         error
}

func (e DetailFailedEvent) Type() EventType { return EventDetailFailed }

// ConfigLoadedEvent is emitted when client configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when client configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
