package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicTask(t *testing.T) {
	var counter int32

	task := func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	}

	pt := New(100*time.Millisecond, task)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt.Start(ctx, true)
	assert.True(t, pt.IsRunning())

	// Wait for 3 executions
	time.Sleep(350 * time.Millisecond)

	pt.Stop()
	assert.False(t, pt.IsRunning())

	assert.GreaterOrEqual(t, atomic.LoadInt32(&counter), int32(3))

	// Verify counter doesn't move after stop
	finalCount := atomic.LoadInt32(&counter)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, finalCount, atomic.LoadInt32(&counter))
}

func TestPeriodicTask_StopBeforeStart(t *testing.T) {
	pt := New(100*time.Millisecond, func(ctx context.Context) {})
	pt.Stop() // Should not panic
	assert.False(t, pt.IsRunning())
}

func TestPeriodicTask_DoubleStart(t *testing.T) {
	var counter int32
	pt := New(100*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt.Start(ctx, true)
	pt.Start(ctx, true) // Second start should be ignored

	time.Sleep(150 * time.Millisecond)
	pt.Stop()

	// One immediate run plus at most two ticks
	assert.LessOrEqual(t, atomic.LoadInt32(&counter), int32(3))
}

func TestPeriodicTask_NoImmediateRun(t *testing.T) {
	var counter int32
	pt := New(time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt.Start(ctx, false)
	time.Sleep(50 * time.Millisecond)
	pt.Stop()

	assert.Equal(t, int32(0), atomic.LoadInt32(&counter))
}
