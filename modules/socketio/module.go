// Package socketio contributes the 'socketio' adapter: emit an event to a
// Socket.IO server and optionally wait for a response event.
package socketio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/registry"
)

// Module implements the registry.Provider interface for this package.
type Module struct{}

// Declare identifies the 'socketio' adapter.
func (m *Module) Declare() registry.Declaration {
	return registry.Declaration{Name: "socketio", Version: "2.0.0", ConfigTag: "ADAPTER_SOCKETIO"}
}

// Methods lists the adapter's dispatchable functions.
func (m *Module) Methods() []registry.Method {
	return []registry.Method{
		{Name: "Emit", Fn: Emit},
		{Name: "Request", Fn: Request},
	}
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value any
	err   error
}

// Emit connects to the server, emits one event once the connection is up and
// returns. The timeout string uses time.ParseDuration syntax; empty means 10s.
func Emit(ctx context.Context, rawURL, event string, data any, timeout string) error {
	_, err := run(ctx, rawURL, event, "", data, timeout)
	return err
}

// Request emits an event and waits for the first occurrence of onEvent,
// returning its payload.
func Request(ctx context.Context, rawURL, emitEvent, onEvent string, data any, timeout string) (any, error) {
	if onEvent == "" {
		return nil, fmt.Errorf("onEvent must not be empty")
	}
	return run(ctx, rawURL, emitEvent, onEvent, data, timeout)
}

// run is the shared connect/emit/wait loop behind Emit and Request.
func run(ctx context.Context, rawURL, emitEvent, onEvent string, data any, timeoutStr string) (any, error) {
	logger := ctxlog.FromContext(ctx).With("adapter", "socketio", "url", rawURL, "emitEvent", emitEvent, "onEvent", onEvent)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	var isConnected atomic.Bool

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		logger.Warn("Failed to parse timeout, using default 10s", "inputTimeout", timeoutStr, "error", err)
		timeout = 10 * time.Second
	}

	done := make(chan opResult, 1)
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Successfully connected", "sid", io.Id())
		if emitEvent != "" {
			jsonData, _ := json.Marshal(data)
			logger.Info("Emitting event", "event", emitEvent, "data", string(jsonData))
			io.Emit(emitEvent, data)
		}
		if onEvent == "" {
			done <- opResult{}
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		done <- opResult{err: errs[0].(error)}
	})

	if onEvent != "" {
		io.On(types.EventName(onEvent), func(data ...any) {
			var responseData any
			if len(data) > 0 {
				responseData = data[0]
			}
			done <- opResult{value: responseData}
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", onEvent)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.value, res.err
	}
}
