package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/scribe/internal/adapters/mq/queue"
	worker "github.com/okian/scribe/internal/adapters/mq/worker"
	model "github.com/okian/scribe/internal/domain/model"
	logging "github.com/okian/scribe/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	attemptChan chan queue.Attempt
	closeOnce   sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		attemptChan: make(chan queue.Attempt, 10),
	}
}

func (mq *mockQueue) Dequeue(_ context.Context) <-chan queue.Attempt {
	return mq.attemptChan
}

func (mq *mockQueue) Close() error {
	mq.closeOnce.Do(func() { close(mq.attemptChan) })
	return nil
}

func (mq *mockQueue) addAttempt(a queue.Attempt) {
	mq.attemptChan <- a
}

type mockSink struct {
	records map[string]model.Attempt
	errors  map[string]error
	mu      sync.RWMutex
}

func newMockSink() *mockSink {
	return &mockSink{
		records: make(map[string]model.Attempt),
		errors:  make(map[string]error),
	}
}

func (ms *mockSink) RecordAttempt(_ context.Context, a worker.Attempt) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if err, exists := ms.errors[a.ID]; exists {
		return err
	}
	ms.records[a.ID] = a
	return nil
}

func (ms *mockSink) setError(attemptID string, err error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.errors[attemptID] = err
}

func (ms *mockSink) getRecord(attemptID string) (model.Attempt, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	a, exists := ms.records[attemptID]
	return a, exists
}

func (ms *mockSink) count() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.records)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestAuditWriter(t *testing.T) {
	convey.Convey("Given an audit writer over a mock queue and sink", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		mq := newMockQueue()
		sink := newMockSink()
		w := worker.NewAuditWriter(mq, sink, worker.WithName("audit-writer-test"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When an attempt record arrives", func() {
			mq.addAttempt(model.Attempt{
				ID:           "attempt1",
				AssignmentID: "a1",
				StudentID:    "s1",
				Status:       model.StatusAccepted,
			})

			convey.Convey("Then the sink receives it", func() {
				waitFor(t, time.Second, func() bool {
					_, ok := sink.getRecord("attempt1")
					return ok
				})
				got, _ := sink.getRecord("attempt1")
				convey.So(got.StudentID, convey.ShouldEqual, "s1")
			})
		})

		convey.Convey("When the sink fails for one record", func() {
			sink.setError("broken", errors.New("disk full"))
			mq.addAttempt(model.Attempt{ID: "broken", AssignmentID: "a1"})
			mq.addAttempt(model.Attempt{ID: "next", AssignmentID: "a1"})

			convey.Convey("Then later records still get written", func() {
				waitFor(t, time.Second, func() bool {
					_, ok := sink.getRecord("next")
					return ok
				})
				_, ok := sink.getRecord("broken")
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the writer is shut down", func() {
			err := w.Shutdown(context.Background())

			convey.Convey("Then it stops cleanly", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a writer pool draining a real queue", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		sink := newMockSink()
		pool := worker.NewPool(4, q, sink)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)

		convey.Convey("When many attempts are enqueued", func() {
			for i := 0; i < 50; i++ {
				ok := q.Enqueue(ctx, model.Attempt{
					ID:           fmt.Sprintf("attempt-%d", i),
					AssignmentID: "a1",
				})
				convey.So(ok, convey.ShouldBeTrue)
			}

			convey.Convey("Then the pool persists all of them on shutdown", func() {
				err := pool.Shutdown(ctx)
				convey.So(err, convey.ShouldBeNil)
				waitFor(t, time.Second, func() bool { return sink.count() == 50 })
			})
		})
	})
}
