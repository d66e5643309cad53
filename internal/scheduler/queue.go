package scheduler

import "container/heap"

// readyQueue is a min-heap of course codes.
type readyQueue []string

var _ heap.Interface = (*readyQueue)(nil)

func (q readyQueue) Len() int           { return len(q) }
func (q readyQueue) Less(i, j int) bool { return q[i] < q[j] }
func (q readyQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *readyQueue) Push(x any) {
	*q = append(*q, x.(string))
}

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	code := old[n-1]
	*q = old[:n-1]
	return code
}
