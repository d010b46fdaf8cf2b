package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/event"
)

// maxLineBytes bounds a single event line; large captured output chunks can
// make lines long.
const maxLineBytes = 4 * 1024 * 1024

// Run reads JSON-lines events from r and feeds each through dispatch, in
// stream order, until the stream ends, the context is cancelled, or the
// dispatcher returns false (the advisory stop signal). It returns the number
// of messages dispatched.
func Run(ctx context.Context, r io.Reader, dispatch func(event.Message) bool) (int, error) {
	logger := ctxlog.FromContext(ctx)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	dispatched := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if err := ctx.Err(); err != nil {
			logger.Warn("Replay cancelled.", "dispatched", dispatched)
			return dispatched, err
		}

		msg, err := Decode(line)
		if err != nil {
			return dispatched, fmt.Errorf("line %d: %w", lineNo, err)
		}

		dispatched++
		if !dispatch(msg) {
			logger.Info("Dispatcher requested stop, ending replay early.", "kind", msg.Kind(), "dispatched", dispatched)
			return dispatched, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return dispatched, fmt.Errorf("reading event stream: %w", err)
	}

	logger.Debug("Replay finished.", "dispatched", dispatched)
	return dispatched, nil
}
