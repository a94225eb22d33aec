package queue

import (
	"strings"
	"testing"

	"github.com/Peiyang-Song/aesop/internal/tree"
)

func entries(pairs ...int) []Entry {
	out := make([]Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Entry{Goal: tree.GoalID(pairs[i]), Priority: tree.Percent(pairs[i+1])})
	}
	return out
}

func popAll(t *testing.T, s Strategy) []tree.GoalID {
	t.Helper()
	var got []tree.GoalID
	for {
		e, ok := s.PopNext()
		if !ok {
			return got
		}
		got = append(got, e.Goal)
	}
}

func TestNew_Names(t *testing.T) {
	for _, name := range []string{"", BestFirstName, DepthFirstName, BreadthFirstName} {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if name != "" && s.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, s.Name())
		}
	}
	if _, err := New("bogus"); err == nil {
		t.Error("New(bogus) should fail")
	}
}

func TestBestFirst_Order(t *testing.T) {
	s := NewBestFirst()
	s.Enqueue(entries(1, 30, 2, 90, 3, 60))
	s.Enqueue(entries(4, 90))

	got := popAll(t, s)
	want := []tree.GoalID{2, 4, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestBestFirst_TieLowestGoal(t *testing.T) {
	// Same priority everywhere: creation order (lowest id) must win
	// regardless of insertion order.
	s := NewBestFirst()
	s.Enqueue(entries(7, 50, 3, 50, 5, 50))

	got := popAll(t, s)
	want := []tree.GoalID{3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestDepthFirst_LIFO(t *testing.T) {
	s := NewDepthFirst()
	s.Enqueue(entries(1, 50))
	s.Enqueue(entries(2, 40, 3, 40)) // one expansion batch

	got := popAll(t, s)
	// The newest batch pops first, last-created goal on top.
	want := []tree.GoalID{3, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestBreadthFirst_FIFO(t *testing.T) {
	s := NewBreadthFirst()
	s.Enqueue(entries(1, 50))
	s.Enqueue(entries(2, 90, 3, 10))

	got := popAll(t, s)
	want := []tree.GoalID{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", got, want)
		}
	}
}

func TestPopNext_Empty(t *testing.T) {
	for _, name := range []string{BestFirstName, DepthFirstName, BreadthFirstName} {
		s, _ := New(name)
		if _, ok := s.PopNext(); ok {
			t.Errorf("%s: pop on empty should report ok=false", name)
		}
	}
}

func TestPeekSummary_DoesNotPop(t *testing.T) {
	for _, name := range []string{BestFirstName, DepthFirstName, BreadthFirstName} {
		s, _ := New(name)
		s.Enqueue(entries(1, 80, 2, 20))

		sum := s.PeekSummary()
		if !strings.Contains(sum, name) {
			t.Errorf("%s: summary %q misses strategy name", name, sum)
		}
		if s.Len() != 2 {
			t.Errorf("%s: PeekSummary changed Len to %d", name, s.Len())
		}
	}
}
