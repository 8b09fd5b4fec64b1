// Package listing implements the pure collection-view pipeline shared by the
// plant list views: search, categorical filtering, stable sorting and
// pagination over an in-memory snapshot of records. It performs no I/O and
// never mutates its inputs.
package listing

import (
	"sort"
	"strings"

	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

// Scope optionally restricts a listing to one owner before any other step
// runs. The restriction is implicit and non-removable: when Owned is set and
// OwnerEmail is empty (no signed-in identity), nothing matches.
type Scope struct {
	Owned      bool
	OwnerEmail string
}

// Result is the derived view over one records snapshot.
type Result struct {
	Visible       []domain.Plant
	TotalMatched  int
	TotalPages    int
	EffectivePage int
}

// Apply computes the visible page for the given records and query. The
// pipeline order is fixed: scope, search, filters, sort, paginate. Records
// are copied before sorting, so the caller's slice is never reordered.
func Apply(records []domain.Plant, q Query, sc Scope) Result {
	matched := make([]domain.Plant, 0, len(records))

	search := strings.ToLower(strings.TrimSpace(q.Search))

	for i := range records {
		p := &records[i]

		if sc.Owned && (sc.OwnerEmail == "" || p.OwnerEmail != sc.OwnerEmail) {
			continue
		}
		if search != "" && !matchesSearch(p, q.SearchFields, search) {
			continue
		}
		if !matchesFilters(p, q.Filters) {
			continue
		}

		matched = append(matched, *p)
	}

	sortPlants(matched, q.SortKey, q.SortDir)

	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = catalogPageSize
	}

	totalPages := (len(matched) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return Result{
		Visible:       matched[start:end],
		TotalMatched:  len(matched),
		TotalPages:    totalPages,
		EffectivePage: page,
	}
}

// matchesSearch reports whether any searchable field contains the lowered
// search text. Empty fields are skipped rather than excluding the record.
func matchesSearch(p *domain.Plant, fields []Field, search string) bool {
	for _, f := range fields {
		v := f.value(p)
		if v == "" {
			continue
		}
		if strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

// matchesFilters applies exact, case-sensitive equality on the stored
// vocabulary for every active filter.
func matchesFilters(p *domain.Plant, filters []Filter) bool {
	for _, f := range filters {
		if !f.active() {
			continue
		}
		if f.Field.value(p) != f.Value {
			return false
		}
	}
	return true
}

// sortPlants stable-sorts by the lower-cased string value of the sort key;
// missing values compare as empty strings and ties keep their input order.
func sortPlants(plants []domain.Plant, key Field, dir Dir) {
	sort.SliceStable(plants, func(i, j int) bool {
		a := strings.ToLower(key.value(&plants[i]))
		b := strings.ToLower(key.value(&plants[j]))
		if dir == Desc {
			return a > b
		}
		return a < b
	})
}
