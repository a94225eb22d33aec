package logic

import "testing"

func TestSimplify_Folds(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a & true", "a"},
		{"true & a", "a"},
		{"a & false", "false"},
		{"a | true", "true"},
		{"a | false", "a"},
		{"false -> a", "true"},
		{"a -> true", "true"},
		{"true -> a", "a"},
		{"!true", "false"},
		{"!!a", "a"},
		{"!(a & true)", "!a"},
	}
	for _, tc := range cases {
		in := Goal(MustParse(tc.in))
		out, changed, err := Simplifier{}.Simplify(in)
		if err != nil {
			t.Fatalf("Simplify(%q): %v", tc.in, err)
		}
		if !changed {
			t.Errorf("Simplify(%q) reported no change", tc.in)
		}
		if got := out.(Sequent).Concl; got != MustParse(tc.want) {
			t.Errorf("Simplify(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSimplify_Quiescent(t *testing.T) {
	in := Sequent{Hyps: []Formula{Atom("a")}, Concl: MustParse("a -> b")}
	out, changed, err := Simplifier{}.Simplify(in)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if changed {
		t.Error("already-simple sequent reported as changed")
	}
	if out.(Sequent).Concl != in.Concl {
		t.Errorf("quiescent pass altered the state: %v", out)
	}
}

func TestSimplify_Hypotheses(t *testing.T) {
	in := Sequent{
		Hyps:  []Formula{True, Atom("a"), Atom("a"), MustParse("b & true")},
		Concl: Atom("c"),
	}
	out, changed, err := Simplifier{}.Simplify(in)
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !changed {
		t.Fatal("hypothesis cleanup not reported")
	}
	got := out.(Sequent)
	if len(got.Hyps) != 2 || got.Hyps[0] != Atom("a") || got.Hyps[1] != Atom("b") {
		t.Errorf("hyps = %v, want [a b]", got.Hyps)
	}
}

func TestSimplify_RejectsForeignState(t *testing.T) {
	if _, _, err := (Simplifier{}).Simplify(42); err == nil {
		t.Error("non-sequent state should fail")
	}
}
