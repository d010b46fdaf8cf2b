package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vk/harnessgo/internal/event"
)

func TestGateSignalIsOneShot(t *testing.T) {
	g := NewGate()
	assert.False(t, g.Signaled())

	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			g.Signal()
		}()
	}
	wg.Wait()

	assert.True(t, g.Signaled())
	g.Signal() // further signals are ignored
	assert.True(t, g.Signaled())
}

func TestGateWaitBeforeSignalUnblocks(t *testing.T) {
	g := NewGate()
	done := make(chan bool, 1)
	go func() {
		done <- g.Wait(0)
	}()

	g.Signal()
	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not released")
	}
}

func TestGateWaitTimeout(t *testing.T) {
	g := NewGate()
	start := time.Now()
	assert.False(t, g.Wait(20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestGateWaitAfterSignalReturnsImmediately(t *testing.T) {
	g := NewGate()
	g.Signal()
	assert.True(t, g.Wait(0))
	assert.True(t, g.Wait(time.Hour))
}

func TestGateWaitContext(t *testing.T) {
	g := NewGate()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, g.WaitContext(ctx))

	g.Signal()
	assert.True(t, g.WaitContext(context.Background()))
}

func TestCompletionSignalsOnTerminalVariantOnly(t *testing.T) {
	d := New()
	var seen int
	On(d, func(event.Message) bool { seen++; return true })
	c := NewCompletion[*event.RunFinished](d)

	c.OnMessage(&event.RunStarting{})
	c.OnMessage(&event.TestPassed{})
	assert.False(t, c.Finished())
	assert.Equal(t, 2, seen)

	c.OnMessage(&event.RunFinished{Total: 2})
	assert.True(t, c.Finished())
	assert.Equal(t, 3, seen)
	assert.True(t, c.Wait(time.Second))
}

func TestCompletionHandlersRunBeforeWaiterReleases(t *testing.T) {
	d := New()
	var total int
	On(d, func(m *event.RunFinished) bool {
		total = m.Total
		return true
	})
	c := NewCompletion[*event.RunFinished](d)

	released := make(chan int, 1)
	go func() {
		c.Wait(0)
		released <- total
	}()

	c.OnMessage(&event.RunFinished{Total: 7})
	select {
	case got := <-released:
		assert.Equal(t, 7, got, "waiter must observe terminal-message side effects")
	case <-time.After(2 * time.Second):
		t.Fatal("waiter was not released")
	}
}

func TestCompletionDispatchResultPropagates(t *testing.T) {
	d := New()
	On(d, func(*event.RunFinished) bool { return false })
	c := NewCompletion[*event.RunFinished](d)

	ok := c.OnMessage(&event.RunFinished{})
	assert.False(t, ok, "handler veto propagates")
	assert.True(t, c.Finished(), "the gate signals regardless of handler results")
}

func TestCompletionCloseReleasesWaiters(t *testing.T) {
	d := New()
	c := NewCompletion[*event.RunFinished](d)

	released := make(chan struct{})
	go func() {
		c.Wait(0)
		close(released)
	}()

	c.Close()
	select {
	case <-released:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not release the waiter")
	}
	c.Close() // closing again is a no-op
}

func TestCompletionWaitTimeout(t *testing.T) {
	c := NewCompletion[*event.RunFinished](New())
	assert.False(t, c.Wait(20*time.Millisecond))
	assert.False(t, c.Finished())
}
