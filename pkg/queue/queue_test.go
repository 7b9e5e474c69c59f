package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumicea/lumicea/pkg/queue"
)

var handled atomic.Int32

type alertJob struct {
	SKU string
}

func (j *alertJob) Handle() error {
	handled.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	return errors.New("smtp unreachable")
}

func init() {
	queue.StartWorkers(context.Background(), 2)

	queue.Register("*queue_test.alertJob", func() queue.Job { return &alertJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
}

func TestDispatchAndProcess(t *testing.T) {
	before := handled.Load()
	require.NoError(t, queue.Dispatch(&alertJob{SKU: "LUM-HOOP-SS-6"}))

	assert.Eventually(t, func() bool {
		return handled.Load() > before
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFailedJobPersisted(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&failJob{}))

	assert.Eventually(t, func() bool {
		return len(queue.FailedJobs()) > 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestDispatchConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&alertJob{SKU: "LUM-HOOP-SS-6"}) //nolint:errcheck
		}()
	}
	wg.Wait()
}
