package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"regscope/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventAgenciesRequested  = domain.EventAgenciesRequested
	EventAgencyRequested    = domain.EventAgencyRequested
	EventAnalyticsRequested = domain.EventAnalyticsRequested
	EventAgenciesLoaded     = domain.EventAgenciesLoaded
	EventAgencyLoaded       = domain.EventAgencyLoaded
	EventAnalyticsLoaded    = domain.EventAnalyticsLoaded
	EventLoadFailed         = domain.EventLoadFailed
)

// Re-export domain event types
type AgenciesRequestedEvent = domain.AgenciesRequestedEvent
type AgencyRequestedEvent = domain.AgencyRequestedEvent
type AnalyticsRequestedEvent = domain.AnalyticsRequestedEvent
type AgenciesLoadedEvent = domain.AgenciesLoadedEvent
type AgencyLoadedEvent = domain.AgencyLoadedEvent
type AnalyticsLoadedEvent = domain.AnalyticsLoadedEvent
type LoadFailedEvent = domain.LoadFailedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	logger    *zap.Logger

	wg        sync.WaitGroup // dispatcher and in-flight handlers
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus. A nil logger discards bus logs.
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		logger:    logger.Named("eventbus"),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for delivery. It never blocks; events are dropped
// when the queue is full or the bus is closed.
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		b.logger.Debug("bus closed, dropping event", zap.String("type", string(event.Type())))
		return
	default:
	}

	b.logger.Debug("publishing event", zap.String("type", string(event.Type())))

	select {
	case b.eventChan <- event:
	default:
		b.logger.Warn("event channel full, dropping event", zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops dispatching, drops queued events and waits for running
// handlers to return. It is safe to call more than once.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				// Handlers may block on network calls; never run them on the dispatcher
				b.wg.Add(1)
				go func(h EventHandler) {
					defer b.wg.Done()
					defer func() {
						if r := recover(); r != nil {
							b.logger.Error("event handler panic",
								zap.String("type", string(event.Type())),
								zap.Any("panic", r),
								zap.ByteString("stack", debug.Stack()))
						}
					}()
					h(event)
				}(s.handler)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
