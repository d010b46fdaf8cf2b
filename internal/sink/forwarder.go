package sink

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/dispatch"
	"github.com/vk/harnessgo/internal/event"
	"github.com/vk/harnessgo/internal/replay"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ForwarderConfig holds the connection settings for a Forwarder.
type ForwarderConfig struct {
	URL                string
	Namespace          string
	EmitEvent          string        // defaults to "lifecycle"
	ConnectTimeout     time.Duration // defaults to 10s
	InsecureSkipVerify bool
}

// Forwarder streams every dispatched lifecycle event to a remote socket.io
// observer, typically a live progress UI. Forwarding is best-effort: an emit
// failure is logged and never votes to stop the run.
type Forwarder struct {
	io        *socket.Socket
	emitEvent string
}

// NewForwarder connects to the remote observer and returns a forwarder ready
// to attach. Connection establishment is bounded by the configured timeout.
func NewForwarder(ctx context.Context, cfg ForwarderConfig) (*Forwarder, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "forwarder", "url", cfg.URL)
	logger.Debug("Connecting to remote observer")

	if cfg.EmitEvent == "" {
		cfg.EmitEvent = "lifecycle"
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse forward URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	connected := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to remote observer", "namespace", cfg.Namespace, "sid", io.Id())
		connected <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if connErr, ok := errs[0].(error); ok {
				connected <- connErr
				return
			}
		}
		connected <- fmt.Errorf("connection to %s failed", cfg.URL)
	})

	io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out connecting to observer at %s", cfg.URL)
	}

	return &Forwarder{io: io, emitEvent: cfg.EmitEvent}, nil
}

// Attach registers a single binding on the Message interface, so every
// variant flows through the forwarder.
func (f *Forwarder) Attach(ctx context.Context, d *dispatch.Dispatcher) {
	logger := ctxlog.FromContext(ctx).With("sink", "forwarder")
	dispatch.On(d, func(msg event.Message) bool {
		envelope, err := replay.Encode(msg)
		if err != nil {
			logger.Warn("Failed to encode event for forwarding", "kind", msg.Kind(), "error", err)
			return true
		}
		var payload map[string]any
		if err := json.Unmarshal(envelope, &payload); err != nil {
			logger.Warn("Failed to decode event envelope for forwarding", "kind", msg.Kind(), "error", err)
			return true
		}
		if err := f.io.Emit(f.emitEvent, payload); err != nil {
			logger.Warn("Failed to forward event", "kind", msg.Kind(), "error", err)
		}
		return true
	})
}

// Close disconnects from the remote observer.
func (f *Forwarder) Close() {
	f.io.Disconnect()
}
