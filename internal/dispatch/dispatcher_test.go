package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/harnessgo/internal/event"
)

func TestDispatchRunsBindingsInRegistrationOrder(t *testing.T) {
	d := New()
	var order []string
	On(d, func(*event.TestPassed) bool {
		order = append(order, "first")
		return true
	})
	On(d, func(event.CaseMessage) bool {
		order = append(order, "second")
		return true
	})
	On(d, func(*event.TestPassed) bool {
		order = append(order, "third")
		return true
	})

	ok := d.Dispatch(&event.TestPassed{})
	assert.True(t, ok)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDispatchMatchesOnConcreteTypeOnly(t *testing.T) {
	d := New()
	var passed, failed int
	On(d, func(*event.TestPassed) bool { passed++; return true })
	On(d, func(*event.TestFailed) bool { failed++; return true })

	d.Dispatch(&event.TestPassed{})
	d.Dispatch(&event.TestPassed{})
	d.Dispatch(&event.TestFailed{})

	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
}

func TestDispatchInterfaceBindings(t *testing.T) {
	d := New()
	var results, failures, cases int
	On(d, func(event.ResultMessage) bool { results++; return true })
	On(d, func(event.FailureMessage) bool { failures++; return true })
	On(d, func(event.CaseMessage) bool { cases++; return true })

	// TestFailed satisfies all three interfaces and must reach all three
	// handlers on one dispatch.
	d.Dispatch(&event.TestFailed{})
	assert.Equal(t, 1, results)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 1, cases)

	// TestSkipped reports a result but carries no failure details.
	d.Dispatch(&event.TestSkipped{})
	assert.Equal(t, 2, results)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 2, cases)

	// RunFinished is neither case-scoped nor a result.
	d.Dispatch(&event.RunFinished{})
	assert.Equal(t, 2, results)
	assert.Equal(t, 1, failures)
	assert.Equal(t, 2, cases)
}

func TestDispatchAggregatesWithoutShortCircuit(t *testing.T) {
	d := New()
	var ran []string
	On(d, func(*event.CaseFinished) bool {
		ran = append(ran, "veto")
		return false
	})
	On(d, func(*event.CaseFinished) bool {
		ran = append(ran, "after-veto")
		return true
	})

	ok := d.Dispatch(&event.CaseFinished{})
	assert.False(t, ok, "one false handler vetoes the dispatch")
	assert.Equal(t, []string{"veto", "after-veto"}, ran, "later handlers still run")
}

func TestDispatchNoBindingsReturnsTrue(t *testing.T) {
	d := New()
	assert.True(t, d.Dispatch(&event.Diagnostic{}))

	On(d, func(*event.TestPassed) bool { return false })
	assert.True(t, d.Dispatch(&event.Diagnostic{}), "unmatched message returns true")
}

func TestDispatchConcurrentFirstTableBuild(t *testing.T) {
	d := New()
	var hits atomic.Int64
	On(d, func(event.SuiteMessage) bool { hits.Add(1); return true })
	On(d, func(*event.SuiteStarting) bool { hits.Add(1); return true })

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			d.Dispatch(&event.SuiteStarting{})
		}()
	}
	wg.Wait()

	// Every dispatch hits both matching handlers exactly once, no matter
	// which goroutine built the table first.
	require.Equal(t, int64(2*goroutines), hits.Load())
}
