package filterstate

import "testing"

func TestNav_SingleGroupRendersInline(t *testing.T) {
	s := &State{Groups: []Group{{Key: "topics", Label: "Topics"}}}
	nav := NewNav(s)

	view := nav.Snapshot()
	if !view.Inline {
		t.Error("single group must render inline, without a drill-down wrapper")
	}
	if view.Entries != nil || view.OpenGroup != nil {
		t.Error("inline view should carry no navigation surface")
	}
}

func TestNav_EnterAndBack(t *testing.T) {
	s := testState()
	nav := NewNav(s)

	if nav.Open() != Top {
		t.Fatal("initial state must be Top")
	}

	nav.Enter(1)
	view := nav.Snapshot()
	if view.OpenGroup == nil || view.OpenGroup.Key != GroupType {
		t.Fatalf("expected group 1 open, got %+v", view)
	}
	if view.Entries != nil {
		t.Error("top-level entries must be hidden while a group is open")
	}

	// Entering another group from inside one is not a reachable
	// transition.
	nav.Enter(2)
	if nav.Open() != 1 {
		t.Errorf("Enter while open changed state to %d", nav.Open())
	}

	nav.Back()
	if nav.Open() != Top {
		t.Error("Back must always return to Top")
	}
}

func TestNav_EnterOutOfRange(t *testing.T) {
	nav := NewNav(testState())

	nav.Enter(-3)
	nav.Enter(99)
	if nav.Open() != Top {
		t.Errorf("out-of-range Enter moved state to %d", nav.Open())
	}
}

func TestNav_BadgesTrackSelections(t *testing.T) {
	s := testState()
	nav := NewNav(s)

	badge := func(key string) int {
		for _, e := range nav.Snapshot().Entries {
			if e.Key == key {
				return e.Badge
			}
		}
		t.Fatalf("no entry for %s", key)
		return 0
	}

	if badge("topics") != 0 {
		t.Error("fresh group should show no badge")
	}

	s.Group("topics").Toggle("anxiety")
	s.Group("topics").Toggle("grief")
	if badge("topics") != 2 {
		t.Errorf("expected badge 2, got %d", badge("topics"))
	}

	s.Group("topics").Toggle("grief")
	if badge("topics") != 1 {
		t.Errorf("badge must be recomputed after every toggle, got %d", badge("topics"))
	}
}

func TestNav_ExactlyOneSurfaceVisible(t *testing.T) {
	s := testState()
	nav := NewNav(s)

	for i := range s.Groups {
		nav.Enter(i)
		view := nav.Snapshot()
		if view.OpenGroup == nil || view.Entries != nil {
			t.Errorf("group %d open: expected only the group surface", i)
		}
		nav.Back()
		view = nav.Snapshot()
		if view.OpenGroup != nil || view.Entries == nil {
			t.Error("back at top: expected only the entry list")
		}
	}
}
