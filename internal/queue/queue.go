// Package queue provides the pluggable frontier-ordering strategies for
// the search loop. A strategy holds goal handles only, never goal
// content: entries that went stale (the goal was decided or became
// irrelevant after insertion) are not removed eagerly, the caller
// re-checks activity after popping and simply discards them. That keeps
// every strategy O(log n) or O(1) per operation with no scans.
package queue

import (
	"fmt"
	"strings"

	"github.com/Peiyang-Song/aesop/internal/tree"
)

// Entry is one queued goal handle together with the priority it carried
// at insertion time. Goal priority is fixed at creation, so the copy
// never goes stale.
type Entry struct {
	Goal     tree.GoalID
	Priority tree.Percent
}

// Strategy orders the working set of active goals. Implementations are
// pure ordering policies and are freely interchangeable.
type Strategy interface {
	// Enqueue inserts a batch of goal handles in creation order.
	Enqueue(entries []Entry)

	// PopNext removes and returns the next handle, or ok=false when
	// the strategy is empty. The returned goal may have gone inactive
	// since insertion; callers skip such entries and pop again.
	PopNext() (Entry, bool)

	// Len returns the number of queued entries, stale ones included.
	Len() int

	// PeekSummary returns a diagnostic one-liner without affecting
	// the ordering.
	PeekSummary() string

	// Name returns the strategy's configuration name.
	Name() string
}

// Strategy configuration names.
const (
	BestFirstName    = "best-first"
	DepthFirstName   = "depth-first"
	BreadthFirstName = "breadth-first"
)

// New returns the strategy registered under name.
func New(name string) (Strategy, error) {
	switch name {
	case BestFirstName, "":
		return NewBestFirst(), nil
	case DepthFirstName:
		return NewDepthFirst(), nil
	case BreadthFirstName:
		return NewBreadthFirst(), nil
	}
	return nil, fmt.Errorf("unknown queue strategy %q", name)
}

func summarize(name string, total int, head []Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d queued", name, total)
	if len(head) == 0 {
		return sb.String()
	}
	sb.WriteString(", head=[")
	for i, e := range head {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "g%d p%d", e.Goal, e.Priority)
	}
	if total > len(head) {
		sb.WriteString(", ...")
	}
	sb.WriteString("]")
	return sb.String()
}
