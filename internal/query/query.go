// Package query derives an ordered project listing from search text, filter
// constraints, and a sort directive. It is a pure recomputation over the
// latest fetched snapshot; it holds no state of its own.
package query

import (
	"sort"
	"strings"

	"github.com/projects42/projects42-cli/internal/api"
)

// FilterState holds the active filter constraints. All constraints are
// optional; the zero value matches everything. Solo is tri-state: nil means
// no constraint, otherwise the project's solo flag must equal the pointee.
type FilterState struct {
	Solo           *bool    `json:"solo"`
	Languages      []string `json:"languages"`
	Specialization string   `json:"specialization"`
}

// DefaultFilters returns the unconstrained filter state.
func DefaultFilters() FilterState {
	return FilterState{Languages: []string{}}
}

// SortKey identifies a sortable project field.
type SortKey string

const (
	SortNone         SortKey = ""
	SortName         SortKey = "name"
	SortXPPoints     SortKey = "xp_points"
	SortEstimateTime SortKey = "estimate_time"
	SortSolo         SortKey = "solo"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState is the current sort directive. The zero value means no sort:
// the filtered order is preserved.
type SortState struct {
	Key       SortKey
	Direction Direction
}

// Toggle applies a click on a sort key: re-selecting the current key flips
// the direction, selecting a new key resets to ascending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Direction == Descending {
			return SortState{Key: key, Direction: Ascending}
		}
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}

// Apply filters and sorts the given projects. The input slice is never
// mutated; the result preserves input order for equal sort keys (stable) and
// entirely when no sort key is set.
func Apply(projects []api.Project, search string, filters FilterState, sortState SortState) []api.Project {
	result := make([]api.Project, 0, len(projects))
	for _, p := range projects {
		if matchesSearch(p, search) && matchesFilters(p, filters) {
			result = append(result, p)
		}
	}

	if sortState.Key == SortNone {
		return result
	}

	cmp := comparatorFor(sortState.Key)
	sort.SliceStable(result, func(i, j int) bool {
		c := cmp(result[i], result[j])
		if sortState.Direction == Descending {
			c = -c
		}
		return c < 0
	})

	return result
}

// matchesSearch reports whether the project matches the search text with a
// case-insensitive substring match on name or description. Empty search
// matches everything.
func matchesSearch(p api.Project, search string) bool {
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return p.Description != "" && strings.Contains(strings.ToLower(p.Description), needle)
}

// matchesFilters applies all active constraints: AND across dimensions, OR
// within the languages set.
func matchesFilters(p api.Project, f FilterState) bool {
	if f.Solo != nil && p.Solo != *f.Solo {
		return false
	}

	if len(f.Languages) > 0 {
		found := false
		for _, lang := range p.Languages {
			for _, want := range f.Languages {
				if lang.Name == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Specialization != "" {
		found := false
		for _, spec := range p.Specializations {
			if spec.Name == f.Specialization {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// comparatorFor returns the total ordering function for a sort key. Each
// returns <0, 0, or >0 in the usual way. Missing optional values sort before
// any present value; text compares case-insensitively; false sorts before
// true.
func comparatorFor(key SortKey) func(a, b api.Project) int {
	switch key {
	case SortName:
		return func(a, b api.Project) int {
			return compareText(a.Name, b.Name)
		}
	case SortXPPoints:
		return func(a, b api.Project) int {
			return compareOptionalInt(a.XPPoints, b.XPPoints)
		}
	case SortEstimateTime:
		return func(a, b api.Project) int {
			return compareOptionalInt(a.EstimateTimeHours, b.EstimateTimeHours)
		}
	case SortSolo:
		return func(a, b api.Project) int {
			return compareBool(a.Solo, b.Solo)
		}
	default:
		return func(a, b api.Project) int { return 0 }
	}
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareOptionalInt(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// ParseSortKey maps a user-supplied field name to a SortKey.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortName, SortXPPoints, SortEstimateTime, SortSolo:
		return SortKey(strings.ToLower(strings.TrimSpace(s))), true
	case SortNone:
		return SortNone, true
	default:
		return SortNone, false
	}
}
