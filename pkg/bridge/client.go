// Package bridge follows the change stream of another overlay process and
// republishes its changes on a local store without writing them.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"reticlego/pkg/logging"
	"reticlego/pkg/model"
)

// Target receives remote changes.
type Target interface {
	Origin() string
	Publish(c model.Change)
}

// Client is a reconnecting websocket subscriber.
type Client struct {
	url    string
	target Target
	delay  time.Duration
	post   func(func())
	dialer *websocket.Dialer

	onConnect func()
}

// New creates a client for url (ws://host/api/events). Deliveries are handed
// to post so they run on the target's goroutine; a nil post delivers inline.
func New(url string, target Target, delay time.Duration, post func(func())) *Client {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Client{url: url, target: target, delay: delay, post: post, dialer: websocket.DefaultDialer}
}

// OnConnect sets fn to run, through post, after every successful connection
// and before any change from that connection is delivered. Changes made while
// disconnected are never streamed, so fn should reload state from the shared
// store. Call before Run.
func (c *Client) OnConnect(fn func()) {
	c.onConnect = fn
}

// Run connects and consumes until ctx ends, reconnecting after every failure.
func (c *Client) Run(ctx context.Context) error {
	for {
		conn, err := c.dial(ctx)
		if err == nil {
			slog.Info("Bridge connected", "url", c.url)
			if c.onConnect != nil {
				c.post(c.onConnect)
			}
			err = c.consume(ctx, conn)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("Bridge disconnected, retrying", "url", c.url, "delay", c.delay, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, http.Header{})
	if err != nil {
		if resp != nil {
			slog.Warn("Bridge: handshake failure", "status_code", resp.StatusCode)
		}
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

func (c *Client) consume(ctx context.Context, conn *websocket.Conn) error {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return errors.New("server closed the stream")
			}
			return err
		}
		var change model.Change
		if err := json.Unmarshal(data, &change); err != nil {
			slog.Warn("Bridge: dropping malformed change", "error", err)
			continue
		}
		if change.Key == "" || change.Origin == c.target.Origin() {
			continue
		}
		logging.Trace("Bridge: remote change", "key", change.Key, "origin", change.Origin)
		c.post(func() { c.target.Publish(change) })
	}
}
