package spawn

import (
	"container/heap"
	"sync"
	"time"
)

// RespawnTask is a pending population slot that becomes due at At.
type RespawnTask struct {
	At time.Time
}

// RespawnQueue orders pending respawn tasks by due time.
type RespawnQueue struct {
	mu    sync.Mutex
	tasks taskHeap
}

// NewRespawnQueue creates an empty queue.
func NewRespawnQueue() *RespawnQueue {
	return &RespawnQueue{}
}

// Schedule enqueues a task due at at.
func (q *RespawnQueue) Schedule(at time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	heap.Push(&q.tasks, RespawnTask{At: at})
}

// DrainDue removes and returns every task with At <= now, earliest first.
// Tasks not yet due stay queued.
func (q *RespawnQueue) DrainDue(now time.Time) []RespawnTask {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []RespawnTask
	for len(q.tasks) > 0 && !q.tasks[0].At.After(now) {
		due = append(due, heap.Pop(&q.tasks).(RespawnTask))
	}
	return due
}

// Len returns the number of pending tasks.
func (q *RespawnQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Next returns the earliest due time. Returns false if the queue is empty.
func (q *RespawnQueue) Next() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return time.Time{}, false
	}
	return q.tasks[0].At, true
}

type taskHeap []RespawnTask

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].At.Before(h[j].At) }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(RespawnTask))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	task := old[n-1]
	*h = old[:n-1]
	return task
}
