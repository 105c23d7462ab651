package fleetview

import (
	"sort"
	"strings"
	"time"
)

// Record is the view of an entity the grouping engine needs. Adapters in
// records.go implement it for vehicles, drivers, tickets and orders.
type Record interface {
	// Key is the document id.
	Key() string
	// StatusLabel is the record's status with the entity default applied.
	StatusLabel() string
	// DateKey is the raw scheduled-date string used for date grouping.
	DateKey() string
	// SearchFields enumerates the fields free-text search inspects.
	SearchFields() []string
	// Alert reports whether the record needs attention at the given time.
	Alert(now time.Time) bool
}

// Query filters records before grouping. Now is the reference time for
// the alert predicate.
type Query struct {
	SearchTerm   string
	StatusFilter string
	AlertOnly    bool
	Now          time.Time
}

// GroupBy selects the partitioning key.
type GroupBy string

const (
	GroupByStatus GroupBy = "status"
	GroupByDate   GroupBy = "date"
)

// OtherDateGroup collects records with no scheduled date. It always sorts
// last.
const OtherDateGroup = "Other"

// Group is one ordered bucket of the derived view.
type Group struct {
	Key      string   `json:"key"`
	Expanded bool     `json:"expanded"`
	Records  []Record `json:"records"`
}

// ExpandState keeps one independent expand/collapse flag per group key.
// Keys that were never toggled fall back to the default function.
type ExpandState struct {
	flags      map[string]bool
	defaultFor func(key string) bool
}

// NewExpandState builds an ExpandState with per-key defaults. A nil
// defaultFor means everything starts expanded.
func NewExpandState(defaultFor func(key string) bool) *ExpandState {
	if defaultFor == nil {
		defaultFor = func(string) bool { return true }
	}
	return &ExpandState{flags: make(map[string]bool), defaultFor: defaultFor}
}

// Expanded reports the current flag for a group key.
func (s *ExpandState) Expanded(key string) bool {
	if v, ok := s.flags[key]; ok {
		return v
	}
	return s.defaultFor(key)
}

// Toggle flips exactly one group's flag; no other key is affected.
func (s *ExpandState) Toggle(key string) {
	s.flags[key] = !s.Expanded(key)
}

// Matches applies the query predicates to a single record.
func Matches(r Record, q Query) bool {
	if term := strings.ToLower(strings.TrimSpace(q.SearchTerm)); term != "" {
		found := false
		for _, f := range r.SearchFields() {
			if strings.Contains(strings.ToLower(f), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.StatusFilter != "" && r.StatusLabel() != q.StatusFilter {
		return false
	}
	if q.AlertOnly && !r.Alert(q.Now) {
		return false
	}
	return true
}

// DeriveView filters records by the query and partitions the matches into
// ordered groups. Status groups follow statusOrder with any unrecognized
// label appended afterward in lexical order; date groups run newest first
// with the dateless "Other" bucket last. Within a group the input order is
// preserved, so equal inputs always derive an identical view.
func DeriveView(records []Record, q Query, groupBy GroupBy, statusOrder []string, exp *ExpandState) []Group {
	if exp == nil {
		exp = NewExpandState(nil)
	}

	buckets := make(map[string][]Record)
	var keys []string
	for _, r := range records {
		if !Matches(r, q) {
			continue
		}
		key := r.StatusLabel()
		if groupBy == GroupByDate {
			key = r.DateKey()
			if key == "" {
				key = OtherDateGroup
			}
		}
		if _, seen := buckets[key]; !seen {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], r)
	}

	switch groupBy {
	case GroupByDate:
		sortDateKeys(keys)
	default:
		sortStatusKeys(keys, statusOrder)
	}

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, Group{
			Key:      key,
			Expanded: exp.Expanded(key),
			Records:  buckets[key],
		})
	}
	return groups
}

func sortStatusKeys(keys, statusOrder []string) {
	rank := func(key string) int {
		for i, s := range statusOrder {
			if s == key {
				return i
			}
		}
		return len(statusOrder)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		// unrecognized statuses sort lexically after the known ones
		return keys[i] < keys[j]
	})
}

// sortDateKeys orders YYYY-MM-DD keys descending; the raw strings compare
// correctly without re-parsing. OtherDateGroup always sinks to the end.
func sortDateKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i] == OtherDateGroup {
			return false
		}
		if keys[j] == OtherDateGroup {
			return true
		}
		return keys[i] > keys[j]
	})
}
