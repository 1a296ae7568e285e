package database

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/quochao170402/ecommerce-platform/configs"
	"github.com/quochao170402/ecommerce-platform/internal/logger"
)

func waitDone(t *testing.T, c *Connector) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("connection attempt did not finish")
	}
}

func TestConnector_SuccessMarksReady(t *testing.T) {
	t.Parallel()

	c := newConnector(logger.NewNop(), time.Second, 3, func(context.Context) error { return nil })
	var seen []State
	c.OnStateChange(func(s State) { seen = append(seen, s) })

	assert.False(t, c.Ready())
	c.Start(context.Background())
	waitDone(t, c)

	assert.True(t, c.Ready())
	assert.NoError(t, c.Err())
	assert.Equal(t, []State{StateConnecting, StateConnected}, seen)
}

func TestConnector_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newConnector(logger.NewNop(), time.Second, 3, func(context.Context) error {
		if calls.Add(1) < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	c.Start(context.Background())
	waitDone(t, c)

	assert.True(t, c.Ready())
	assert.Equal(t, int32(3), calls.Load())
}

func TestConnector_FailureIsLoggedNotFatal(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	c := newConnector(logger.FromZap(zap.New(core)), time.Second, 2, func(context.Context) error {
		return errors.New("no reachable servers")
	})
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	c.Start(context.Background())
	waitDone(t, c)

	assert.False(t, c.Ready())
	assert.Equal(t, StateDisconnected, c.State())

	var connErr *ConnectionError
	require.ErrorAs(t, c.Err(), &connErr)
	assert.Equal(t, 2, connErr.Attempts)
	assert.Equal(t, 1, logs.FilterMessage("MongoDB connection failed").Len())
	assert.Equal(t, 2, logs.FilterMessage("MongoDB connection attempt failed").Len())
}

func TestConnector_RecoversAfterAttemptsExhausted(t *testing.T) {
	t.Parallel()

	var up atomic.Bool
	var calls atomic.Int32
	c := newConnector(logger.NewNop(), time.Second, 1, func(context.Context) error {
		calls.Add(1)
		if up.Load() {
			return nil
		}
		return errors.New("connection refused")
	})
	c.maxBackoff = 20 * time.Millisecond
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	var connected atomic.Bool
	c.OnStateChange(func(s State) {
		if s == StateConnected {
			connected.Store(true)
		}
	})

	c.Start(context.Background())
	waitDone(t, c)
	require.False(t, c.Ready())
	require.Error(t, c.Err())

	assert.Eventually(t, func() bool { return calls.Load() > 2 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, c.Ready())

	up.Store(true)
	assert.Eventually(t, c.Ready, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, StateConnected, c.State())
	assert.True(t, connected.Load())
}

func TestConnector_CloseStopsReconnecting(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newConnector(logger.NewNop(), time.Second, 1, func(context.Context) error {
		calls.Add(1)
		return errors.New("connection refused")
	})
	c.maxBackoff = 10 * time.Millisecond

	c.Start(context.Background())
	waitDone(t, c)
	require.NoError(t, c.Close(context.Background()))

	time.Sleep(50 * time.Millisecond)
	settled := calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
	assert.False(t, c.Ready())
}

func TestConnector_BackoffIsCapped(t *testing.T) {
	t.Parallel()

	c := newConnector(logger.NewNop(), time.Second, 1, func(context.Context) error { return nil })

	assert.Equal(t, 100*time.Millisecond, c.backoff(1))
	assert.Equal(t, 400*time.Millisecond, c.backoff(2))
	assert.Equal(t, maxBackoff, c.backoff(50))
	assert.Equal(t, maxBackoff, c.backoff(1<<20))
}

func TestConnector_StartIsIdempotent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newConnector(logger.NewNop(), time.Second, 1, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	c.Start(context.Background())
	c.Start(context.Background())
	waitDone(t, c)

	assert.Equal(t, int32(1), calls.Load())
}

func TestConnector_CancelledContextStopsRetrying(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	c := newConnector(logger.NewNop(), time.Second, 5, func(context.Context) error {
		cancel()
		return errors.New("connection refused")
	})

	c.Start(ctx)
	waitDone(t, c)

	assert.False(t, c.Ready())
	assert.ErrorIs(t, c.Err(), context.Canceled)
}

func TestNewConnector_MissingURI(t *testing.T) {
	t.Parallel()

	_, err := NewConnector(configs.DatabaseConfig{Name: "ecommerce"}, logger.NewNop())

	var cfgErr *configs.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "MONGODB_URI", cfgErr.Field)
}

func TestNewConnector_MalformedURI(t *testing.T) {
	t.Parallel()

	_, err := NewConnector(configs.DatabaseConfig{URI: "postgres://nope", Name: "ecommerce"}, logger.NewNop())

	var cfgErr *configs.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewConnector_UnreachableHostDoesNotBlock(t *testing.T) {
	t.Parallel()

	c, err := NewConnector(configs.DatabaseConfig{
		URI:             "mongodb://127.0.0.1:1/?directConnection=true",
		Name:            "ecommerce",
		ConnectTimeout:  200 * time.Millisecond,
		ConnectAttempts: 1,
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(context.Background()) })

	begin := time.Now()
	c.Start(context.Background())
	assert.Less(t, time.Since(begin), 100*time.Millisecond)
	assert.NotNil(t, c.Database())

	waitDone(t, c)
	assert.False(t, c.Ready())
	assert.Error(t, c.Err())
}
