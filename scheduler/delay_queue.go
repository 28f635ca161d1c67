// Package scheduler owns the trigger surface: the deferred one-shot
// expirations and the recurring/startup passes.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/subexpiry/logging"
	"github.com/dev-mohitbeniwal/subexpiry/metrics"
)

// FireFunc is invoked once per scheduled task when its time comes.
type FireFunc func(ctx context.Context, id string)

type task struct {
	at  time.Time
	id  string
	seq uint64
}

// taskKey identifies a pending (id, instant) pair.
type taskKey struct {
	id string
	at int64
}

// taskHeap implements heap.Interface ordered by fire time, then insertion order.
type taskHeap []task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x interface{}) {
	*h = append(*h, x.(task))
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// DelayQueue is an in-memory min-heap of deferred expirations drained by a
// single goroutine. Tasks are not persisted and cannot be cancelled by id.
// An id may be queued for several instants, but an (id, instant) pair is held
// only once while it is pending.
type DelayQueue struct {
	fire    FireFunc
	metrics *metrics.Metrics

	mu      sync.Mutex
	tasks   taskHeap
	pending map[taskKey]struct{}
	seq     uint64
	started bool
	stopped bool

	wake    chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	running sync.WaitGroup
}

func NewDelayQueue(fire FireFunc, m *metrics.Metrics) *DelayQueue {
	return &DelayQueue{
		fire:    fire,
		metrics: m,
		pending: make(map[taskKey]struct{}),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Start launches the drain loop. Tasks scheduled before Start wait for it.
func (q *DelayQueue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started || q.stopped {
		q.mu.Unlock()
		return
	}
	q.started = true
	ctx, q.cancel = context.WithCancel(ctx)
	q.mu.Unlock()

	go q.loop(ctx)
}

// ScheduleAt queues id to fire at the given instant. Instants in the past fire
// on the next loop iteration. Scheduling a pair that is already pending is a
// no-op that still reports true. Returns false once the queue is stopped.
func (q *DelayQueue) ScheduleAt(at time.Time, id string) bool {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return false
	}
	key := taskKey{id: id, at: at.UnixNano()}
	if _, ok := q.pending[key]; ok {
		q.mu.Unlock()
		return true
	}
	q.pending[key] = struct{}{}
	q.seq++
	heap.Push(&q.tasks, task{at: at, id: id, seq: q.seq})
	n := len(q.tasks)
	q.mu.Unlock()

	q.metrics.SetPendingTimers(n)

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Len reports how many tasks are waiting.
func (q *DelayQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Stop discards pending tasks and waits for callbacks already running.
func (q *DelayQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	discarded := len(q.tasks)
	q.tasks = nil
	q.pending = make(map[taskKey]struct{})
	started := q.started
	cancel := q.cancel
	q.mu.Unlock()

	if started {
		cancel()
		<-q.done
	}
	q.running.Wait()
	q.metrics.SetPendingTimers(0)

	if discarded > 0 {
		logger.Info("Discarded pending deferred expirations", zap.Int("count", discarded))
	}
}

func (q *DelayQueue) loop(ctx context.Context) {
	defer close(q.done)

	// Callbacks outlive the loop so Stop can let them finish.
	fireCtx := context.WithoutCancel(ctx)

	for {
		q.mu.Lock()
		var wait <-chan time.Time
		var timer *time.Timer
		if len(q.tasks) > 0 {
			next := q.tasks[0]
			if d := time.Until(next.at); d > 0 {
				timer = time.NewTimer(d)
				wait = timer.C
			} else {
				heap.Pop(&q.tasks)
				delete(q.pending, taskKey{id: next.id, at: next.at.UnixNano()})
				n := len(q.tasks)
				q.running.Add(1)
				q.mu.Unlock()

				q.metrics.SetPendingTimers(n)
				go func(id string) {
					defer q.running.Done()
					q.fire(fireCtx, id)
				}(next.id)
				continue
			}
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-q.wake:
		case <-wait:
		}
		if timer != nil {
			timer.Stop()
		}
	}
}
