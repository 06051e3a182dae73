package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"regscope/internal/eventbus"
	"regscope/internal/loader"
	"regscope/internal/ui"
)

// EnvE2ETest makes the dashboard announce itself once the program is built
const EnvE2ETest = "REGSCOPE_E2E_TEST"

// resultEvents are forwarded from the bus to the UI
var resultEvents = []eventbus.EventType{
	eventbus.EventAgenciesLoaded,
	eventbus.EventAgencyLoaded,
	eventbus.EventAnalyticsLoaded,
	eventbus.EventLoadFailed,
}

func runTUI(parent context.Context, opts *RootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	logger := opts.Logger
	cfg := opts.Config

	client, err := opts.newClient()
	if err != nil {
		return err
	}

	bus := eventbus.New(logger)
	svc := loader.New(ctx, bus, client, logger, cfg.RequestTimeout.Duration)

	model := ui.NewModel(bus, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Set up event forwarding to UI
	events := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case events <- e:
		case <-ctx.Done():
		}
	}
	for _, eventType := range resultEvents {
		bus.Subscribe(eventType, forward)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range events {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if os.Getenv(EnvE2ETest) == "1" {
		fmt.Println("__READY__")
	}

	logger.Info("starting dashboard", zap.String("api", cfg.APIBaseURL))
	_, runErr := p.Run()

	// Cleanup
	cancel()
	svc.Stop()
	bus.Close()
	close(events)
	<-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		logger.Error("dashboard exited with error", zap.Error(runErr))
		return fmt.Errorf("error running program: %w", runErr)
	}
	logger.Info("dashboard exited")
	return nil
}
