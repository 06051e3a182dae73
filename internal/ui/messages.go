package ui

import (
	"regscope/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearNotificationMsg hides the notification with the given id, unless a
// newer one replaced it
type clearNotificationMsg struct {
	id int
}
