package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	var done atomic.Bool
	bgTasks.Add(func() {
		done.Store(true)
	})
	err := bgTasks.Shutdown(context.Background())
	assert.NoError(t, err)
	assert.True(t, done.Load())
}

func TestShutdownDrainsQueue(t *testing.T) {
	bgTasks := New(slog.Default(), 2, 10)
	bgTasks.Run()
	var count atomic.Int32
	for i := 0; i < 5; i++ {
		bgTasks.Add(func() {
			count.Add(1)
		})
	}
	err := bgTasks.Shutdown(context.Background())
	assert.NoError(t, err)
	assert.EqualValues(t, 5, count.Load())
}

func TestPanicDoesNotCrash(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	bgTasks.Add(func() {
		panic("boom")
	})
	err := bgTasks.Shutdown(context.Background())
	assert.NoError(t, err)
}
