// Package feed acquires game records from the source website's websocket
// traffic and persists captured batches. Rendering never touches the network;
// everything long-running lives here.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/handscribe/internal/record"
)

const defaultIdleTimeout = 30 * time.Second

// Client captures game records from a websocket feed. Frames that carry game
// payloads are decoded and deduplicated by hand key; everything else is
// ignored.
type Client struct {
	url         string
	logger      *log.Logger
	clock       quartz.Clock
	idleTimeout time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClock injects a clock, used by tests to drive the idle timeout.
func WithClock(clock quartz.Clock) ClientOption {
	return func(c *Client) { c.clock = clock }
}

// WithIdleTimeout sets how long the capture waits without receiving a game
// frame before deciding the feed has gone quiet.
func WithIdleTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.idleTimeout = d }
}

// NewClient creates a capture client for the given feed URL.
func NewClient(rawURL string, logger *log.Logger, opts ...ClientOption) *Client {
	c := &Client{
		url:         rawURL,
		logger:      logger.WithPrefix("feed"),
		clock:       quartz.NewReal(),
		idleTimeout: defaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture connects to the feed and collects game records until the context is
// cancelled, the idle timeout fires, or the peer closes cleanly. Whatever was
// captured by then is returned.
func (c *Client) Capture(ctx context.Context) (record.Batch, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("feed: invalid url %q: %w", c.url, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}

	c.logger.Info("connecting to feed", "url", u.String())
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("feed: connect %s: %w", u.String(), err)
	}
	defer conn.Close()

	batch := record.Batch{}

	idle := make(chan struct{})
	var idleOnce sync.Once
	goIdle := func() {
		idleOnce.Do(func() {
			close(idle)
			_ = conn.Close()
		})
	}
	timer := c.clock.AfterFunc(c.idleTimeout, goIdle)
	defer timer.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-idle:
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-idle:
				c.logger.Info("feed idle, capture complete", "games", len(batch))
				return batch, nil
			default:
			}
			if ctx.Err() != nil {
				c.logger.Info("capture cancelled", "games", len(batch))
				return batch, nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info("feed closed, capture complete", "games", len(batch))
				return batch, nil
			}
			return batch, fmt.Errorf("feed: read: %w", err)
		}
		timer.Reset(c.idleTimeout)

		for _, game := range DecodeFrame(payload) {
			if batch.Add(game) {
				c.logger.Info("captured game", "key", game.Key, "seats", len(game.Seats))
			} else {
				c.logger.Debug("duplicate game ignored", "key", game.Key)
			}
		}
	}
}

// DecodeFrame extracts game records from a raw websocket frame. The feed's
// transport prefixes payloads with a numeric frame code, which is stripped
// before decoding. Frames without the key/rounds markers are not game frames
// and decode to nothing.
func DecodeFrame(payload []byte) []*record.GameRecord {
	if !bytes.Contains(payload, []byte(`"key"`)) || !bytes.Contains(payload, []byte(`"rounds"`)) {
		return nil
	}
	trimmed := bytes.TrimLeft(payload, "0123456789")

	var games []*record.GameRecord
	if err := json.Unmarshal(trimmed, &games); err == nil {
		return games
	}

	// Some frames carry a single record rather than an array.
	var game record.GameRecord
	if err := json.Unmarshal(trimmed, &game); err == nil && game.Key != "" {
		return []*record.GameRecord{&game}
	}
	return nil
}
