package filterstate

import (
	"net/url"
	"sort"
	"strings"
)

// ===============================
// Filter groups
// ===============================

// Option is one selectable value inside a group.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Group is a named, independent set of filter options. Option values
// within a group are unique.
type Group struct {
	Key     string
	Label   string
	Options []Option
}

// The two built-in groups keep their historical bare parameter names;
// every other group is namespaced.
const (
	GroupLanguages = "languages"
	GroupType      = "type"

	paramPrefix = "filter_"
	paramSort   = "sort"
)

// ParamName maps a group key to its URL query parameter name.
func ParamName(key string) string {
	switch key {
	case GroupLanguages, GroupType:
		return key
	}
	return paramPrefix + key
}

func (g *Group) SelectedValues() []string {
	var values []string
	for _, o := range g.Options {
		if o.Selected {
			values = append(values, o.Value)
		}
	}
	return values
}

// SelectedCount is the live badge value for the group.
func (g *Group) SelectedCount() int {
	n := 0
	for _, o := range g.Options {
		if o.Selected {
			n++
		}
	}
	return n
}

// Toggle flips one option by value. Unknown values are ignored.
func (g *Group) Toggle(value string) {
	for i := range g.Options {
		if g.Options[i].Value == value {
			g.Options[i].Selected = !g.Options[i].Selected
			return
		}
	}
}

func (g *Group) clear() {
	for i := range g.Options {
		g.Options[i].Selected = false
	}
}

// ===============================
// Filter state
// ===============================

// State is the aggregate of every group's selections plus the sort key
// and any simple boolean toggles. It round-trips losslessly through a
// URL query string.
type State struct {
	Groups  []Group
	Sort    string
	Toggles map[string]string
}

func (s *State) Group(key string) *Group {
	for i := range s.Groups {
		if s.Groups[i].Key == key {
			return &s.Groups[i]
		}
	}
	return nil
}

// Encode serializes the state the way the filter form submits: checked
// values comma-joined under the group's parameter name, empty groups
// omitted, sort and toggles copied verbatim.
func (s *State) Encode() url.Values {
	values := url.Values{}

	for i := range s.Groups {
		g := &s.Groups[i]
		selected := g.SelectedValues()
		if len(selected) == 0 {
			continue
		}
		values.Set(ParamName(g.Key), strings.Join(selected, ","))
	}

	if s.Sort != "" {
		values.Set(paramSort, s.Sort)
	}

	keys := make([]string, 0, len(s.Toggles))
	for k := range s.Toggles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		values.Set(k, s.Toggles[k])
	}

	return values
}

// SubmitURL is the full navigation target: path?query.
func (s *State) SubmitURL(path string) string {
	q := s.Encode().Encode()
	if q == "" {
		return path
	}
	return path + "?" + q
}

// Restore applies recognized query parameters onto the groups. Each
// group is restored independently: a missing parameter clears that
// group, unknown parameters are ignored, and calling Restore twice with
// the same values is a no-op the second time.
func (s *State) Restore(values url.Values) {
	for i := range s.Groups {
		g := &s.Groups[i]
		g.clear()

		raw := values.Get(ParamName(g.Key))
		if raw == "" {
			continue
		}

		wanted := map[string]bool{}
		for _, v := range strings.Split(raw, ",") {
			if v != "" {
				wanted[v] = true
			}
		}

		for j := range g.Options {
			if wanted[g.Options[j].Value] {
				g.Options[j].Selected = true
			}
		}
	}

	if v := values.Get(paramSort); v != "" {
		s.Sort = v
	}

	for k := range s.Toggles {
		if v := values.Get(k); v != "" {
			s.Toggles[k] = v
		}
	}
}
