package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromDefaultsToNop(t *testing.T) {
	log := loggerFrom(context.Background())
	assert.NotNil(t, log)
	log.Info("dropped")

	var nilLogger *zap.Logger
	assert.NotNil(t, loggerFrom(WithLogger(context.Background(), nilLogger)))
}

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))

	const numGoroutines = 50
	var wg sync.WaitGroup
	for i := range numGoroutines {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			loggerFrom(ctx).Debug("worker", zap.Int("id", id))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, numGoroutines, logs.FilterMessage("worker").Len())
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	core1, logs1 := observer.New(zap.DebugLevel)
	core2, logs2 := observer.New(zap.DebugLevel)
	ctx1 := WithLogger(context.Background(), zap.New(core1))
	ctx2 := WithLogger(context.Background(), zap.New(core2))

	loggerFrom(ctx1).Info("one")
	loggerFrom(ctx2).Info("two")
	loggerFrom(ctx2).Info("two")

	assert.Equal(t, 1, logs1.Len())
	assert.Equal(t, 2, logs2.Len())
}
