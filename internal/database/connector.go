// Package database owns the process-wide MongoDB client. The connection
// attempt runs in the background so the HTTP server can bind immediately;
// callers observe the outcome through Ready, Done and Err.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/quochao170402/ecommerce-platform/configs"
	"github.com/quochao170402/ecommerce-platform/internal/logger"
)

// State is the lifecycle state of the connection.
type State int32

const (
	StateConnecting State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "connecting"
	}
}

const (
	backoffUnit = 100 * time.Millisecond
	maxBackoff  = 5 * time.Second
)

// ConnectionError is returned by Err when every connection attempt failed.
type ConnectionError struct {
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ErrClosed is reported when Close interrupts the initial attempts.
var ErrClosed = errors.New("database connector closed")

// StateListener is notified on every state change.
type StateListener func(State)

// Connector holds the shared client and its connection state.
type Connector struct {
	client   *mongo.Client
	database *mongo.Database
	log      logger.Logger

	timeout    time.Duration
	attempts   int
	maxBackoff time.Duration
	ping       func(ctx context.Context) error

	state     atomic.Int32
	err       atomic.Pointer[ConnectionError]
	done      chan struct{}
	stop      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	listeners []StateListener
}

// NewConnector validates the URI and prepares the client without dialing.
// A malformed URI is reported as a *configs.ConfigurationError.
func NewConnector(cfg configs.DatabaseConfig, log logger.Logger) (*Connector, error) {
	if cfg.URI == "" {
		return nil, &configs.ConfigurationError{Field: "MONGODB_URI", Message: "is required"}
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, &configs.ConfigurationError{Field: "MONGODB_URI", Message: "is not a valid connection string", Err: err}
	}

	c := newConnector(log, cfg.ConnectTimeout, cfg.ConnectAttempts, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	c.client = client
	c.database = client.Database(cfg.Name)
	return c, nil
}

func newConnector(log logger.Logger, timeout time.Duration, attempts int, ping func(context.Context) error) *Connector {
	if attempts < 1 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = configs.DefaultConnectTimeout
	}
	return &Connector{
		log:        log,
		timeout:    timeout,
		attempts:   attempts,
		maxBackoff: maxBackoff,
		ping:       ping,
		done:       make(chan struct{}),
		stop:       make(chan struct{}),
	}
}

// OnStateChange registers a listener. Register listeners before Start.
func (c *Connector) OnStateChange(fn StateListener) {
	c.listeners = append(c.listeners, fn)
}

// Start launches the connection attempt in the background and returns
// immediately. When every attempt fails the connector keeps pinging with
// capped backoff until it connects, ctx is cancelled or Close is called.
// Subsequent calls are no-ops.
func (c *Connector) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.setState(StateConnecting)
		go c.connect(ctx)
	})
}

func (c *Connector) connect(ctx context.Context) {
	if c.initial(ctx) {
		c.reconnect(ctx)
	}
}

// initial runs the bounded attempts and closes done. It reports whether the
// caller should keep trying in the background.
func (c *Connector) initial(ctx context.Context) bool {
	defer close(c.done)

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			if !c.wait(ctx, c.backoff(attempt-1)) {
				err := context.Cause(ctx)
				if err == nil {
					err = ErrClosed
				}
				c.fail(attempt-1, err)
				return false
			}
		}

		pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
		lastErr = c.ping(pingCtx)
		cancel()

		if lastErr == nil {
			c.setState(StateConnected)
			c.log.Info("MongoDB connected", logger.Int("attempt", attempt))
			return false
		}

		c.log.Warn("MongoDB connection attempt failed",
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", c.attempts),
			logger.Error(lastErr),
		)

		if errors.Is(lastErr, context.Canceled) && ctx.Err() != nil {
			c.fail(attempt, lastErr)
			return false
		}
	}

	c.fail(c.attempts, lastErr)
	return ctx.Err() == nil
}

func (c *Connector) reconnect(ctx context.Context) {
	for n := c.attempts; ; n++ {
		if !c.wait(ctx, c.backoff(n)) {
			return
		}

		pingCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.ping(pingCtx)
		cancel()

		if err != nil {
			c.log.Debug("MongoDB still unreachable", logger.Error(err))
			continue
		}

		select {
		case <-c.stop:
			return
		default:
		}
		c.setState(StateConnected)
		c.log.Info("MongoDB connected", logger.Int("attempt", n+1))
		return
	}
}

// backoff grows quadratically with the number of failed attempts, capped at
// maxBackoff.
func (c *Connector) backoff(failed int) time.Duration {
	if failed > 100 {
		return c.maxBackoff
	}
	d := time.Duration(failed*failed) * backoffUnit
	if d <= 0 || d > c.maxBackoff {
		return c.maxBackoff
	}
	return d
}

func (c *Connector) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-c.stop:
		return false
	case <-t.C:
		return true
	}
}

func (c *Connector) fail(attempts int, err error) {
	connErr := &ConnectionError{Attempts: attempts, Err: err}
	c.err.Store(connErr)
	c.setState(StateDisconnected)
	c.log.Error("MongoDB connection failed", logger.Error(connErr))
}

func (c *Connector) setState(s State) {
	c.state.Store(int32(s))
	for _, fn := range c.listeners {
		fn(s)
	}
}

// State returns the current connection state.
func (c *Connector) State() State {
	return State(c.state.Load())
}

// Status names the current state.
func (c *Connector) Status() string {
	return c.State().String()
}

// Ready reports whether the database answered a ping.
func (c *Connector) Ready() bool {
	return c.State() == StateConnected
}

// Done is closed once the initial attempts have finished either way.
func (c *Connector) Done() <-chan struct{} {
	return c.done
}

// Err returns the error from the initial attempts, or nil.
func (c *Connector) Err() error {
	if e := c.err.Load(); e != nil {
		return e
	}
	return nil
}

// Ping checks the connection on demand.
func (c *Connector) Ping(ctx context.Context) error {
	return c.ping(ctx)
}

// Database returns the handle shared by all repositories.
func (c *Connector) Database() *mongo.Database {
	return c.database
}

// Close stops background reconnects and disconnects the client.
func (c *Connector) Close(ctx context.Context) error {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	c.setState(StateDisconnected)
	return nil
}
