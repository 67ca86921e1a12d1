package engine

import (
	"container/heap"
	"time"

	"github.com/ericogr/warlord-cards/internal/game"
)

type task struct {
	at    time.Duration
	seq   uint64
	owner game.EntityID
	fn    func()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Timeline runs deferred work in simulated time. Tasks due at the same
// instant run in the order they were scheduled. Nothing here touches the
// wall clock.
type Timeline struct {
	now      time.Duration
	seq      uint64
	queue    taskQueue
	depth    int
	maxDepth int
	// budget bounds RunUntil so a runaway cascade cannot spin forever.
	budget int
}

func NewTimeline(maxDepth int) *Timeline {
	if maxDepth <= 0 {
		maxDepth = 32
	}
	return &Timeline{maxDepth: maxDepth, budget: 100000}
}

func (t *Timeline) Now() time.Duration { return t.now }

// Pending returns the number of queued tasks.
func (t *Timeline) Pending() int { return len(t.queue) }

// After schedules fn to run d after the current instant. owner ties the task
// to an entity so CancelOwner can drop it; zero means unowned.
func (t *Timeline) After(d time.Duration, owner game.EntityID, fn func()) {
	if d < 0 {
		d = 0
	}
	t.seq++
	heap.Push(&t.queue, &task{at: t.now + d, seq: t.seq, owner: owner, fn: fn})
}

// CancelOwner drops every queued task owned by id.
func (t *Timeline) CancelOwner(id game.EntityID) {
	if id == 0 {
		return
	}
	kept := t.queue[:0]
	for _, tk := range t.queue {
		if tk.owner != id {
			kept = append(kept, tk)
		}
	}
	for i := len(kept); i < len(t.queue); i++ {
		t.queue[i] = nil
	}
	t.queue = kept
	heap.Init(&t.queue)
}

// Clear abandons all queued work.
func (t *Timeline) Clear() {
	t.queue = nil
}

func (t *Timeline) step() {
	tk := heap.Pop(&t.queue).(*task)
	if tk.at > t.now {
		t.now = tk.at
	}
	tk.fn()
}

// Flush runs every task already due. It may be re-entered from a running
// task; past maxDepth nested flushes return at once and the outer loop
// picks the work up.
func (t *Timeline) Flush() {
	if t.depth >= t.maxDepth {
		return
	}
	t.depth++
	defer func() { t.depth-- }()
	for len(t.queue) > 0 && t.queue[0].at <= t.now {
		t.step()
	}
}

// Sleep advances time by d, running every task that falls due on the way.
func (t *Timeline) Sleep(d time.Duration) {
	target := t.now + d
	for len(t.queue) > 0 && t.queue[0].at <= target {
		t.step()
	}
	if target > t.now {
		t.now = target
	}
}

// RunUntil runs tasks in order until done reports true. It returns false if
// the queue drained or the step budget ran out first.
func (t *Timeline) RunUntil(done func() bool) bool {
	for steps := 0; !done(); steps++ {
		if len(t.queue) == 0 || steps >= t.budget {
			return false
		}
		t.step()
	}
	return true
}
