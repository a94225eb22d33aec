package queue

import (
	"container/heap"
	"fmt"
)

// ============================================================
// Best-first: max-heap on priority, ties to the oldest goal
// ============================================================

type heapEntry struct {
	Entry
	seq uint64
}

type entryHeap []heapEntry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	// Equal priority: earliest-created goal wins, then insertion
	// order, so repeated runs pop an identical sequence.
	if h[i].Goal != h[j].Goal {
		return h[i].Goal < h[j].Goal
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(heapEntry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// BestFirst pops the highest-priority goal first. This is the default
// strategy: priority approximates the probability that the goal is
// provable, so the most promising branch is always explored next.
type BestFirst struct {
	h   entryHeap
	seq uint64
}

// NewBestFirst returns an empty best-first strategy.
func NewBestFirst() *BestFirst { return &BestFirst{} }

func (b *BestFirst) Name() string { return BestFirstName }

func (b *BestFirst) Enqueue(entries []Entry) {
	for _, e := range entries {
		b.seq++
		heap.Push(&b.h, heapEntry{Entry: e, seq: b.seq})
	}
}

func (b *BestFirst) PopNext() (Entry, bool) {
	if b.h.Len() == 0 {
		return Entry{}, false
	}
	return heap.Pop(&b.h).(heapEntry).Entry, true
}

func (b *BestFirst) Len() int { return b.h.Len() }

func (b *BestFirst) PeekSummary() string {
	if b.h.Len() == 0 {
		return fmt.Sprintf("%s: 0 queued", BestFirstName)
	}
	top := b.h[0]
	return fmt.Sprintf("%s: %d queued, next=g%d p%d", BestFirstName, b.h.Len(), top.Goal, top.Priority)
}

// ============================================================
// Depth-first: LIFO stack, most recently created goal first
// ============================================================

// DepthFirst pops the most recently enqueued goal first, driving the
// search down one branch before backtracking. With a fixed rule source
// this yields a bit-identical rule application sequence across runs.
type DepthFirst struct {
	stack []Entry
}

// NewDepthFirst returns an empty depth-first strategy.
func NewDepthFirst() *DepthFirst { return &DepthFirst{} }

func (d *DepthFirst) Name() string { return DepthFirstName }

func (d *DepthFirst) Enqueue(entries []Entry) {
	// Batch arrives in creation order; pushing in order makes the
	// most recently created goal the next pop.
	d.stack = append(d.stack, entries...)
}

func (d *DepthFirst) PopNext() (Entry, bool) {
	if len(d.stack) == 0 {
		return Entry{}, false
	}
	e := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return e, true
}

func (d *DepthFirst) Len() int { return len(d.stack) }

func (d *DepthFirst) PeekSummary() string {
	// Show from the popping end.
	n := len(d.stack)
	head := make([]Entry, 0, 5)
	for i := n - 1; i >= 0 && len(head) < 5; i-- {
		head = append(head, d.stack[i])
	}
	return summarize(DepthFirstName, n, head)
}

// ============================================================
// Breadth-first: FIFO queue
// ============================================================

// BreadthFirst pops goals in insertion order, exploring the tree level
// by level.
type BreadthFirst struct {
	fifo []Entry
}

// NewBreadthFirst returns an empty breadth-first strategy.
func NewBreadthFirst() *BreadthFirst { return &BreadthFirst{} }

func (b *BreadthFirst) Name() string { return BreadthFirstName }

func (b *BreadthFirst) Enqueue(entries []Entry) {
	b.fifo = append(b.fifo, entries...)
}

func (b *BreadthFirst) PopNext() (Entry, bool) {
	if len(b.fifo) == 0 {
		return Entry{}, false
	}
	e := b.fifo[0]
	b.fifo = b.fifo[1:]
	return e, true
}

func (b *BreadthFirst) Len() int { return len(b.fifo) }

func (b *BreadthFirst) PeekSummary() string {
	head := b.fifo
	if len(head) > 5 {
		head = head[:5]
	}
	return summarize(BreadthFirstName, len(b.fifo), head)
}
