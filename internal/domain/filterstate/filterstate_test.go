package filterstate

import (
	"net/url"
	"reflect"
	"testing"
)

func testState() *State {
	return &State{
		Groups: []Group{
			{
				Key:   GroupLanguages,
				Label: "Languages",
				Options: []Option{
					{Value: "English", Label: "English"},
					{Value: "French", Label: "French"},
					{Value: "Swahili", Label: "Swahili"},
				},
			},
			{
				Key:   GroupType,
				Label: "Session type",
				Options: []Option{
					{Value: "peer", Label: "Peer"},
					{Value: "group", Label: "Group"},
				},
			},
			{
				Key:   "topics",
				Label: "Topics",
				Options: []Option{
					{Value: "anxiety", Label: "Anxiety"},
					{Value: "grief", Label: "Grief"},
				},
			},
		},
		Toggles: map[string]string{},
	}
}

func selections(s *State) map[string][]string {
	out := map[string][]string{}
	for i := range s.Groups {
		if sel := s.Groups[i].SelectedValues(); len(sel) > 0 {
			out[s.Groups[i].Key] = sel
		}
	}
	return out
}

func TestEncode_OmitsEmptyGroups(t *testing.T) {
	s := testState()
	s.Group(GroupLanguages).Toggle("English")

	values := s.Encode()

	if got := values.Get("languages"); got != "English" {
		t.Errorf("expected languages=English, got %q", got)
	}
	if values.Has("filter_topics") {
		t.Error("unchecked group must be omitted entirely")
	}
	if values.Has("type") {
		t.Error("unchecked built-in group must be omitted entirely")
	}
}

func TestEncode_ParamNames(t *testing.T) {
	s := testState()
	s.Group(GroupLanguages).Toggle("English")
	s.Group(GroupType).Toggle("peer")
	s.Group("topics").Toggle("anxiety")
	s.Group("topics").Toggle("grief")
	s.Sort = "starts_at"

	values := s.Encode()

	if got := values.Get("languages"); got != "English" {
		t.Errorf("languages: got %q", got)
	}
	if got := values.Get("type"); got != "peer" {
		t.Errorf("type: got %q", got)
	}
	if got := values.Get("filter_topics"); got != "anxiety,grief" {
		t.Errorf("filter_topics: got %q", got)
	}
	if got := values.Get("sort"); got != "starts_at" {
		t.Errorf("sort: got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	s := testState()
	s.Group(GroupLanguages).Toggle("English")
	s.Group(GroupLanguages).Toggle("Swahili")
	s.Group("topics").Toggle("grief")
	s.Sort = "price"

	want := selections(s)
	encoded := s.Encode()

	restored := testState()
	restored.Restore(encoded)

	if got := selections(restored); !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip selections differ:\n got %v\nwant %v", got, want)
	}
	if restored.Sort != "price" {
		t.Errorf("sort not restored: %q", restored.Sort)
	}
}

func TestRestore_Idempotent(t *testing.T) {
	values, _ := url.ParseQuery("languages=English,French&filter_topics=anxiety")

	s := testState()
	s.Restore(values)
	once := selections(s)

	s.Restore(values)
	twice := selections(s)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("restore is not idempotent:\n once %v\ntwice %v", once, twice)
	}
}

func TestRestore_IndependentGroupsAndUnknownParams(t *testing.T) {
	values, _ := url.ParseQuery("filter_topics=grief&utm_source=newsletter&filter_bogus=x")

	s := testState()
	s.Group(GroupLanguages).Toggle("English") // stale selection, no param on the URL
	s.Restore(values)

	if n := s.Group(GroupLanguages).SelectedCount(); n != 0 {
		t.Errorf("group without a parameter should be cleared, has %d selected", n)
	}
	if got := s.Group("topics").SelectedValues(); !reflect.DeepEqual(got, []string{"grief"}) {
		t.Errorf("topics: got %v", got)
	}
}

func TestRestore_UnknownValuesIgnored(t *testing.T) {
	values, _ := url.ParseQuery("languages=English,Klingon")

	s := testState()
	s.Restore(values)

	if got := s.Group(GroupLanguages).SelectedValues(); !reflect.DeepEqual(got, []string{"English"}) {
		t.Errorf("got %v", got)
	}
}

func TestSubmitURL(t *testing.T) {
	s := testState()
	s.Group(GroupType).Toggle("group")
	s.Toggles["free"] = "true"

	got := s.SubmitURL("/sessions")
	want := "/sessions?free=true&type=group"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	empty := testState()
	if got := empty.SubmitURL("/sessions"); got != "/sessions" {
		t.Errorf("empty state: got %q", got)
	}
}
