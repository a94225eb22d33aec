package tree

import (
	"fmt"
	"strings"
)

// Snapshot renders the whole tree as ASCII art, one line per node, for
// diagnostics. Goals show priority, depth, progress and status; rapps
// show the rule reference and status. Irrelevant nodes are tagged.
func (t *Tree) Snapshot() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("tree: %d goals, %d rapps\n", t.NumGoals(), t.NumRapps()))
	t.renderGoal(&sb, t.root, "", true)
	return sb.String()
}

func (t *Tree) renderGoal(sb *strings.Builder, id GoalID, prefix string, isLast bool) {
	g := &t.goals[id]

	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}
	if g.parent == NoParent {
		connector = ""
		childPrefix = prefix
	}

	tag := ""
	if g.irrelevant {
		tag = " [irrelevant]"
	}
	if g.forced {
		tag += " [forced]"
	}
	sb.WriteString(fmt.Sprintf("%s%sg%d p=%d d=%d %s %s%s\n",
		prefix, connector, g.id, g.priority, g.depth, g.progress, g.provability, tag))

	for i, rid := range g.children {
		t.renderRapp(sb, rid, childPrefix, i == len(g.children)-1)
	}
}

func (t *Tree) renderRapp(sb *strings.Builder, id RappID, prefix string, isLast bool) {
	r := &t.rapps[id]

	connector := "├── "
	childPrefix := prefix + "│   "
	if isLast {
		connector = "└── "
		childPrefix = prefix + "    "
	}

	tag := ""
	if r.irrelevant {
		tag = " [irrelevant]"
	}
	sb.WriteString(fmt.Sprintf("%s%sr%d %s %s%s\n",
		prefix, connector, r.id, r.rule, r.provability, tag))

	for i, gid := range r.children {
		t.renderGoal(sb, gid, childPrefix, i == len(r.children)-1)
	}
}
