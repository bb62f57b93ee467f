package cluster

import (
	"fmt"
	"strings"

	"github.com/inference-sim/warehouse-sim/sim"
)

// WaitQueue is the FIFO pending-admission queue. Queries wait here when
// every live cluster is at capacity and are retried each step in order.
type WaitQueue struct {
	queue []sim.Query
}

// Enqueue adds a query to the back of the queue.
func (wq *WaitQueue) Enqueue(q sim.Query) {
	wq.queue = append(wq.queue, q)
}

// Len returns the number of waiting queries.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the query at the front without removing it.
func (wq *WaitQueue) Peek() (sim.Query, bool) {
	if len(wq.queue) == 0 {
		return sim.Query{}, false
	}
	return wq.queue[0], true
}

// Retry offers each waiting query to admit in FIFO order. Queries for which
// admit returns false stay queued in their relative order.
// Returns the number admitted.
func (wq *WaitQueue) Retry(admit func(sim.Query) bool) int {
	if admit == nil {
		panic("Retry: admit must not be nil")
	}
	remaining := wq.queue[:0]
	admitted := 0
	for _, q := range wq.queue {
		if admit(q) {
			admitted++
			continue
		}
		remaining = append(remaining, q)
	}
	clear(wq.queue[len(remaining):])
	wq.queue = remaining
	return admitted
}

// Items returns the queue contents. Callers MUST NOT modify the slice.
func (wq *WaitQueue) Items() []sim.Query {
	return wq.queue
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, q := range wq.queue {
		sb.WriteString(fmt.Sprint(q.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
