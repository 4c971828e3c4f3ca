package remote

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/padmenu/padmenu/dispatch"
	"github.com/padmenu/padmenu/internal/ctxlog"
	"github.com/padmenu/padmenu/nav"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// inputBuffer bounds how much remote input can pile up between frames.
const inputBuffer = 64

// Config holds the connection settings for a remote input bridge.
type Config struct {
	URL                string
	Namespace          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Bridge is a connected socket.io client delivering remote input.
type Bridge struct {
	logger *slog.Logger
	io     *socket.Socket

	events chan dispatch.Event
	moves  chan nav.Direction
}

// Dial connects to the remote host and subscribes to its input events.
// It blocks until the connection is established, the config timeout
// expires, or ctx is cancelled.
func Dial(ctx context.Context, cfg Config) (*Bridge, error) {
	logger := ctxlog.FromContext(ctx).With("remote", cfg.URL, "namespace", cfg.Namespace)
	logger.Debug("Dialing remote input bridge.")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
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

	b := &Bridge{
		logger: logger,
		io:     io,
		events: make(chan dispatch.Event, inputBuffer),
		moves:  make(chan nav.Direction, inputBuffer),
	}

	connected := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("🎮 Remote input connected", "sid", io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connection refused by remote host")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connected <- err:
		default:
		}
	})

	io.On(types.EventName("menu:event"), b.onEvent)
	io.On(types.EventName("menu:move"), b.onMove)

	io.Connect()

	select {
	case <-ctx.Done():
		io.Disconnect()
		return nil, ctx.Err()
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, err
		}
	}
	return b, nil
}

// Events returns the buffered remote event stream. The frame loop
// drains it once per frame.
func (b *Bridge) Events() <-chan dispatch.Event { return b.events }

// Moves returns the buffered remote directional input stream.
func (b *Bridge) Moves() <-chan nav.Direction { return b.moves }

// Drain empties both buffers into a snapshot of pending input, without
// blocking. The frame loop calls it once per frame.
func (b *Bridge) Drain() ([]dispatch.Event, []nav.Direction) {
	var events []dispatch.Event
	var moves []nav.Direction

drainEvents:
	for {
		select {
		case ev := <-b.events:
			events = append(events, ev)
		default:
			break drainEvents
		}
	}

drainMoves:
	for {
		select {
		case dir := <-b.moves:
			moves = append(moves, dir)
		default:
			break drainMoves
		}
	}
	return events, moves
}

// Close disconnects from the remote host.
func (b *Bridge) Close() {
	b.logger.Debug("Disconnecting remote input bridge.")
	b.io.Disconnect()
}

func (b *Bridge) onEvent(data ...any) {
	if len(data) == 0 {
		b.logger.Warn("Remote event carried no payload.")
		return
	}
	ev, err := decodeEvent(data[0])
	if err != nil {
		b.logger.Warn("Discarding malformed remote event.", "error", err)
		return
	}
	select {
	case b.events <- ev:
	default:
		b.logger.Warn("Remote event buffer full, dropping input.", "node", ev.NodeID, "kind", ev.Kind)
	}
}

func (b *Bridge) onMove(data ...any) {
	if len(data) == 0 {
		b.logger.Warn("Remote move carried no payload.")
		return
	}
	dir, err := decodeMove(data[0])
	if err != nil {
		b.logger.Warn("Discarding malformed remote move.", "error", err)
		return
	}
	select {
	case b.moves <- dir:
	default:
		b.logger.Warn("Remote move buffer full, dropping input.", "direction", dir)
	}
}
