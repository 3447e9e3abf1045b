package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := New(16)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l, cancel
}

func TestDo_ReturnsResult(t *testing.T) {
	l, _ := startLoop(t)
	wantErr := errors.New("boom")

	err := l.Do(context.Background(), func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	ran := false
	require.NoError(t, l.Do(context.Background(), func() error { ran = true; return nil }))
	assert.True(t, ran)
}

func TestPost_RunsInOrderOnOneGoroutine(t *testing.T) {
	l, _ := startLoop(t)

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 10; i++ {
		l.Post(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	require.NoError(t, l.Do(context.Background(), func() error { return nil }))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestPanicDoesNotKillLoop(t *testing.T) {
	l, _ := startLoop(t)

	l.Post(func() { panic("bad task") })
	err := l.Do(context.Background(), func() error { panic("bad do") })
	assert.Error(t, err)

	assert.NoError(t, l.Do(context.Background(), func() error { return nil }))
}

func TestDo_AfterStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	assert.ErrorIs(t, l.Do(context.Background(), func() error { return nil }), ErrStopped)
	l.Post(func() {}) // must not block
}
