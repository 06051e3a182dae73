package loader

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"regscope/internal/api"
	"regscope/internal/domain"
	"regscope/internal/eventbus"
)

// Fetcher is the subset of the API client the loader needs
type Fetcher interface {
	Agencies(ctx context.Context) ([]domain.Agency, error)
	Agency(ctx context.Context, slug string) (domain.AgencyDetail, error)
	Analytics(ctx context.Context) (domain.Analytics, error)
}

// Service answers load requests published on the bus by fetching from the
// API and publishing the result (or a LoadFailedEvent) with the request's
// view token
type Service struct {
	ctx     context.Context
	bus     eventbus.EventBus
	fetcher Fetcher
	logger  *zap.Logger
	timeout time.Duration
	unsubs  []func()
}

// New creates a loader and subscribes it to request events. Requests are
// cancelled when ctx is done.
func New(ctx context.Context, bus eventbus.EventBus, fetcher Fetcher, logger *zap.Logger, timeout time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		ctx:     ctx,
		bus:     bus,
		fetcher: fetcher,
		logger:  logger.Named("loader"),
		timeout: timeout,
	}

	s.unsubs = append(s.unsubs,
		bus.Subscribe(eventbus.EventAgenciesRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.AgenciesRequestedEvent); ok {
				s.loadAgencies(event)
			}
		}),
		bus.Subscribe(eventbus.EventAgencyRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.AgencyRequestedEvent); ok {
				s.loadAgency(event)
			}
		}),
		bus.Subscribe(eventbus.EventAnalyticsRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.AnalyticsRequestedEvent); ok {
				s.loadAnalytics(event)
			}
		}),
	)
	return s
}

// Stop unsubscribes from the bus
func (s *Service) Stop() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

func (s *Service) requestContext() (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(s.ctx, s.timeout)
	}
	return context.WithCancel(s.ctx)
}

func (s *Service) loadAgencies(event eventbus.AgenciesRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()

	agencies, err := s.fetcher.Agencies(ctx)
	if err != nil {
		s.fail(event.Token, domain.ResourceAgencies, err)
		return
	}
	s.logger.Info("agencies loaded", zap.Uint64("token", uint64(event.Token)), zap.Int("count", len(agencies)))
	s.bus.Publish(eventbus.AgenciesLoadedEvent{Token: event.Token, Agencies: agencies})
}

func (s *Service) loadAgency(event eventbus.AgencyRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()

	detail, err := s.fetcher.Agency(ctx, event.Slug)
	if err != nil {
		s.fail(event.Token, domain.ResourceAgency, err, zap.String("slug", event.Slug))
		return
	}
	s.logger.Info("agency loaded",
		zap.Uint64("token", uint64(event.Token)),
		zap.String("slug", event.Slug),
		zap.Int("children", len(detail.Children)))
	s.bus.Publish(eventbus.AgencyLoadedEvent{Token: event.Token, Detail: detail})
}

func (s *Service) loadAnalytics(event eventbus.AnalyticsRequestedEvent) {
	ctx, cancel := s.requestContext()
	defer cancel()

	analytics, err := s.fetcher.Analytics(ctx)
	if err != nil {
		s.fail(event.Token, domain.ResourceAnalytics, err)
		return
	}
	s.logger.Info("analytics loaded",
		zap.Uint64("token", uint64(event.Token)),
		zap.Int("years", len(analytics.Corrections)))
	s.bus.Publish(eventbus.AnalyticsLoadedEvent{Token: event.Token, Analytics: analytics})
}

func (s *Service) fail(token domain.ViewToken, resource domain.Resource, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.Uint64("token", uint64(token)),
		zap.String("resource", string(resource)),
		zap.Error(err))
	s.logger.Error("load failed", fields...)

	s.bus.Publish(eventbus.LoadFailedEvent{
		Token:    token,
		Resource: resource,
		NotFound: errors.Is(err, api.ErrNotFound),
		Err:      err,
	})
}
