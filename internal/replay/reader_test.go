package replay

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/harnessgo/internal/dispatch"
	"github.com/vk/harnessgo/internal/event"
)

const sampleStream = `{"kind":"run.starting","run_id":"r1"}
{"kind":"suite.starting","suite":"checkout","case_count":2}

{"kind":"test.passed","suite":"checkout","case":"pay"}
{"kind":"test.failed","suite":"checkout","case":"refund","failure":{"message":"boom"}}
{"kind":"run.finished","run_id":"r1","total":2,"passed":1,"failed":1}
`

func TestRunDispatchesStreamInOrder(t *testing.T) {
	var kinds []string
	n, err := Run(context.Background(), strings.NewReader(sampleStream), func(msg event.Message) bool {
		kinds = append(kinds, msg.Kind())
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []string{
		"run.starting",
		"suite.starting",
		"test.passed",
		"test.failed",
		"run.finished",
	}, kinds)
}

func TestRunStopsWhenDispatcherVetoes(t *testing.T) {
	var kinds []string
	n, err := Run(context.Background(), strings.NewReader(sampleStream), func(msg event.Message) bool {
		kinds = append(kinds, msg.Kind())
		return msg.Kind() != "test.passed"
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "test.passed", kinds[len(kinds)-1])
}

func TestRunDecodeErrorIdentifiesLine(t *testing.T) {
	stream := "{\"kind\":\"run.starting\"}\ngarbage\n"
	n, err := Run(context.Background(), strings.NewReader(stream), func(event.Message) bool { return true })
	assert.Equal(t, 1, n)
	require.ErrorContains(t, err, "line 2")
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n, err := Run(ctx, strings.NewReader(sampleStream), func(event.Message) bool {
		cancel()
		return true
	})
	assert.Equal(t, 1, n)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunEmptyStream(t *testing.T) {
	n, err := Run(context.Background(), strings.NewReader(""), func(event.Message) bool {
		t.Fatal("dispatch must not be called")
		return false
	})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRunSignalsCompletionGate(t *testing.T) {
	d := dispatch.New()
	var failures int
	dispatch.On(d, func(event.FailureMessage) bool { failures++; return true })
	completion := dispatch.NewCompletion[*event.RunFinished](d)

	go func() {
		defer completion.Close()
		if _, err := Run(context.Background(), strings.NewReader(sampleStream), completion.OnMessage); err != nil {
			t.Errorf("replay failed: %v", err)
		}
	}()

	require.True(t, completion.Wait(5*time.Second))
	assert.Equal(t, 1, failures)
}
