package sink

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/harnessgo/internal/dispatch"
	"github.com/vk/harnessgo/internal/event"
)

func TestSummaryCountsOutcomes(t *testing.T) {
	d := dispatch.New()
	s := NewSummary(0)
	s.Attach(context.Background(), d)

	assert.True(t, d.Dispatch(&event.TestPassed{}))
	assert.True(t, d.Dispatch(&event.TestPassed{}))
	assert.True(t, d.Dispatch(&event.TestFailed{Failure: event.FailureInfo{Message: "boom"}}))
	assert.True(t, d.Dispatch(&event.TestSkipped{}))

	passed, failed, skipped := s.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
}

func TestSummaryIgnoresCaseFinished(t *testing.T) {
	d := dispatch.New()
	s := NewSummary(0)
	s.Attach(context.Background(), d)

	// A case ends with both a body result and a case envelope carrying the
	// same outcome; only the body result may count.
	d.Dispatch(&event.TestPassed{})
	d.Dispatch(&event.CaseFinished{Outcome: event.OutcomePassed})

	passed, failed, skipped := s.Counts()
	assert.Equal(t, 1, passed)
	assert.Zero(t, failed)
	assert.Zero(t, skipped)
}

func TestSummaryFailureBudget(t *testing.T) {
	d := dispatch.New()
	s := NewSummary(2)
	s.Attach(context.Background(), d)

	assert.True(t, d.Dispatch(&event.TestFailed{Failure: event.FailureInfo{Message: "one"}}))
	assert.True(t, d.Dispatch(&event.TestFailed{Failure: event.FailureInfo{Message: "two"}}))
	assert.False(t, d.Dispatch(&event.TestFailed{Failure: event.FailureInfo{Message: "three"}}),
		"dispatch over budget must carry the stop vote")

	// Passing and skipped results never vote to stop, even after the
	// budget is blown; only further failures keep voting.
	assert.True(t, d.Dispatch(&event.TestPassed{}))
	assert.True(t, d.Dispatch(&event.TestSkipped{}))
	assert.False(t, d.Dispatch(&event.TestFailed{Failure: event.FailureInfo{Message: "four"}}))

	passed, failed, skipped := s.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 4, failed, "over-budget failures still count")
	assert.Equal(t, 1, skipped)
}

func TestSummaryCollectsNonResultFailures(t *testing.T) {
	d := dispatch.New()
	s := NewSummary(0)
	s.Attach(context.Background(), d)

	d.Dispatch(&event.CleanupFailure{Failure: event.FailureInfo{Message: "teardown leaked"}})
	d.Dispatch(&event.ErrorReport{Failure: event.FailureInfo{Message: "runner crashed"}})

	// Infrastructure failures are logged but do not count as case results.
	passed, failed, skipped := s.Counts()
	assert.Zero(t, passed+failed+skipped)

	var buf bytes.Buffer
	s.WriteReport(&buf)
	assert.Contains(t, buf.String(), "teardown leaked")
	assert.Contains(t, buf.String(), "runner crashed")
}

func TestSummaryWriteReport(t *testing.T) {
	d := dispatch.New()
	s := NewSummary(0)
	s.Attach(context.Background(), d)

	d.Dispatch(&event.TestPassed{})
	d.Dispatch(&event.TestFailed{Failure: event.FailureInfo{Message: "assertion mismatch"}})
	d.Dispatch(&event.RunFinished{Total: 2, Passed: 1, Failed: 1})

	var buf bytes.Buffer
	s.WriteReport(&buf)
	assert.Contains(t, buf.String(), "passed: 1, failed: 1, skipped: 0")
	assert.Contains(t, buf.String(), "assertion mismatch")
}
