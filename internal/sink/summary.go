package sink

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/dispatch"
	"github.com/vk/harnessgo/internal/event"
)

// Summary aggregates result messages into counters and votes to stop the run
// once the failure budget is exceeded. Safe for concurrent dispatch.
type Summary struct {
	// MaxFailures is the failure budget; 0 means unlimited.
	MaxFailures int

	mu       sync.Mutex
	passed   int
	failed   int
	skipped  int
	failures []string
}

// NewSummary creates a summary sink with the given failure budget.
func NewSummary(maxFailures int) *Summary {
	return &Summary{MaxFailures: maxFailures}
}

// Attach registers the summary's bindings on the dispatcher. It binds the
// ResultMessage and FailureMessage interfaces rather than concrete variants,
// so one failed test feeds both the counters and the failure log from a
// single dispatch.
func (s *Summary) Attach(ctx context.Context, d *dispatch.Dispatcher) {
	logger := ctxlog.FromContext(ctx)

	dispatch.On(d, func(msg event.ResultMessage) bool {
		return s.record(msg)
	})
	dispatch.On(d, func(msg event.FailureMessage) bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if len(s.failures) < 25 {
			s.failures = append(s.failures, msg.FailureInfo().Message)
		}
		return true
	})
	dispatch.On(d, func(msg *event.RunFinished) bool {
		logger.Info("Run finished.",
			"total", msg.Total,
			"passed", msg.Passed,
			"failed", msg.Failed,
			"skipped", msg.Skipped,
			"elapsed", msg.Elapsed,
		)
		return true
	})
}

// record updates the counters and votes to stop when a failing result lands
// over budget. Passing and skipped results never vote to stop, no matter how
// many failures came before them. Counting TestPassed/TestFailed/TestSkipped
// only; CaseFinished also satisfies ResultMessage but restates the body's
// outcome, so it is skipped to avoid double counting.
func (s *Summary) record(msg event.ResultMessage) bool {
	if _, isCase := msg.(*event.CaseFinished); isCase {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch msg.CaseOutcome() {
	case event.OutcomePassed:
		s.passed++
	case event.OutcomeFailed:
		s.failed++
		if s.MaxFailures > 0 && s.failed > s.MaxFailures {
			return false
		}
	case event.OutcomeSkipped:
		s.skipped++
	}
	return true
}

// Counts returns the aggregated result counters.
func (s *Summary) Counts() (passed, failed, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passed, s.failed, s.skipped
}

// WriteReport renders a human-readable summary to w.
func (s *Summary) WriteReport(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(w, "passed: %d, failed: %d, skipped: %d\n", s.passed, s.failed, s.skipped)
	for _, f := range s.failures {
		fmt.Fprintf(w, "  failure: %s\n", f)
	}
}
