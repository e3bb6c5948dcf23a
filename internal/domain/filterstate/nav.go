package filterstate

// ===============================
// Drill-down navigation
// ===============================

// Top marks the top level of the drill-down.
const Top = -1

// Entry is one top-level navigable row: a group label and its live
// selection badge. Badge is 0 when nothing in the group is checked, and
// the rendering layer hides it then.
type Entry struct {
	Key   string
	Label string
	Badge int
}

// View is a declarative snapshot of the navigation surface. Exactly one
// of the two shapes is populated: the top level (Entries) or a single
// open group (OpenGroup).
type View struct {
	// Inline is set when fewer than two groups exist; no drill-down
	// wrapper is built and the options render flat.
	Inline bool

	Entries   []Entry
	OpenGroup *Group
}

// Nav is the single-level drill-down over a filter state. States are
// {Top, Group(i)}; the only transitions are Top -> Group(i) on Enter and
// Group(i) -> Top on Back. Top-level entries are hidden while a group is
// open, so switching groups without going back is unreachable on
// purpose.
type Nav struct {
	state *State
	open  int
}

func NewNav(state *State) *Nav {
	return &Nav{state: state, open: Top}
}

// Enter opens group i. Ignored while another group is already open or
// when the index is out of range.
func (n *Nav) Enter(i int) {
	if n.open != Top {
		return
	}
	if i < 0 || i >= len(n.state.Groups) {
		return
	}
	n.open = i
}

// Back always returns to the top level, never to another group.
func (n *Nav) Back() {
	n.open = Top
}

func (n *Nav) Open() int { return n.open }

// Snapshot recomputes the view, badges included, from current state.
func (n *Nav) Snapshot() View {
	if len(n.state.Groups) < 2 {
		return View{Inline: true}
	}

	if n.open != Top {
		return View{OpenGroup: &n.state.Groups[n.open]}
	}

	entries := make([]Entry, 0, len(n.state.Groups))
	for i := range n.state.Groups {
		g := &n.state.Groups[i]
		entries = append(entries, Entry{
			Key:   g.Key,
			Label: g.Label,
			Badge: g.SelectedCount(),
		})
	}
	return View{Entries: entries}
}
