package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/dispatch"
	"github.com/vk/harnessgo/internal/event"
	"github.com/vk/harnessgo/internal/replay"
	"github.com/vk/harnessgo/internal/sink"
)

// Run executes the configured modes: manifest inspection when manifests were
// loaded, event routing when an event stream was given.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.collector != nil {
		if err := a.inspect(ctx); err != nil {
			return err
		}
	}
	if a.config.EventsPath != "" {
		return a.route(ctx)
	}
	return nil
}

// inspect materializes and prints every suite's effective traits. A trait
// that fails to materialize is reported in place and does not abort its
// siblings or the remaining suites.
func (a *App) inspect(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, suite := range a.index.Suites() {
		fmt.Fprintf(a.outW, "suite %q", suite.Name)
		if suite.Extends != "" {
			fmt.Fprintf(a.outW, " extends %q", suite.Extends)
		}
		fmt.Fprintln(a.outW)

		for _, traitName := range a.registry.TraitNames() {
			traits, err := a.collector.TraitsOf(suite.Name, traitName)
			if err != nil {
				return err
			}
			for _, tr := range traits {
				inst, err := tr.Instance()
				if err != nil {
					logger.Error("Trait failed to materialize.", "suite", suite.Name, "trait", tr.Descriptor.TraitType, "error", err)
					fmt.Fprintf(a.outW, "  %s: ERROR: %v\n", tr.Descriptor.TraitType, err)
					continue
				}
				fmt.Fprintf(a.outW, "  %s: %+v\n", tr.Descriptor.TraitType, inst)
			}
		}
	}
	return nil
}

// route streams the recorded events through a completion-gated dispatcher
// wired to the configured sinks. The replay runs on its own goroutine so the
// completion wait never blocks the dispatching goroutine.
func (a *App) route(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(a.config.EventsPath)
	if err != nil {
		return fmt.Errorf("failed to open event stream: %w", err)
	}
	defer f.Close()

	d := dispatch.New()
	summary := sink.NewSummary(a.config.MaxFailures)
	summary.Attach(ctx, d)

	if a.config.ForwardURL != "" {
		fwd, err := sink.NewForwarder(ctx, sink.ForwarderConfig{URL: a.config.ForwardURL})
		if err != nil {
			return fmt.Errorf("failed to connect forwarder: %w", err)
		}
		defer fwd.Close()
		fwd.Attach(ctx, d)
	}

	completion := dispatch.NewCompletion[*event.RunFinished](d)

	errCh := make(chan error, 1)
	go func() {
		dispatched, err := replay.Run(ctx, f, completion.OnMessage)
		if err == nil && !completion.Finished() {
			logger.Warn("Event stream ended without a run.finished message.", "dispatched", dispatched)
		}
		completion.Close()
		errCh <- err
	}()

	if !completion.Wait(a.config.WaitTimeout) {
		logger.Warn("Timed out waiting for run completion.", "timeout", a.config.WaitTimeout)
	}
	err = <-errCh

	summary.WriteReport(a.outW)
	return err
}
