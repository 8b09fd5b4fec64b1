package listing

// Dir is a sort direction.
type Dir string

const (
	Asc  Dir = "asc"
	Desc Dir = "desc"
)

// FilterAll is the sentinel filter value meaning "no restriction".
const FilterAll = "all"

const (
	catalogPageSize = 10
	ownerPageSize   = 8
)

// Filter restricts a listing to records whose field equals Value exactly.
// A Value of "all" (or empty) deactivates the filter.
type Filter struct {
	Field Field
	Value string
}

func (f Filter) active() bool {
	return f.Value != "" && f.Value != FilterAll
}

// Query carries the user-controlled parameters of one list view: free-text
// search, categorical filters, sort key/direction and the requested page.
// The zero value is not useful; construct with NewCatalogQuery or
// NewOwnerQuery.
type Query struct {
	Search       string
	SearchFields []Field
	Filters      []Filter
	SortKey      Field
	SortDir      Dir
	Page         int
	PageSize     int
}

// NewCatalogQuery returns the default query for the public catalog view:
// sorted by name ascending, searching name, category and watering frequency.
func NewCatalogQuery() Query {
	return Query{
		SearchFields: []Field{FieldName, FieldCategory, FieldWateringFrequency},
		SortKey:      FieldName,
		SortDir:      Asc,
		Page:         1,
		PageSize:     catalogPageSize,
	}
}

// NewOwnerQuery returns the default query for an owner-scoped view, which
// additionally searches the health status field.
func NewOwnerQuery() Query {
	return Query{
		SearchFields: []Field{FieldName, FieldCategory, FieldWateringFrequency, FieldHealthStatus},
		SortKey:      FieldName,
		SortDir:      Asc,
		Page:         1,
		PageSize:     ownerPageSize,
	}
}

// SetSearch replaces the search text and resets the page to 1.
func (q *Query) SetSearch(text string) {
	q.Search = text
	q.Page = 1
}

// SetFilter sets the filter for the given field and resets the page to 1.
// A value of "all" clears the restriction while keeping the page reset.
func (q *Query) SetFilter(field Field, value string) {
	for i := range q.Filters {
		if q.Filters[i].Field == field {
			q.Filters[i].Value = value
			q.Page = 1
			return
		}
	}
	q.Filters = append(q.Filters, Filter{Field: field, Value: value})
	q.Page = 1
}

// ToggleSort flips the direction when key is already the active sort key,
// and otherwise switches to key ascending. Search, filters and page are
// left untouched.
func (q *Query) ToggleSort(key Field) {
	if q.SortKey == key {
		if q.SortDir == Asc {
			q.SortDir = Desc
		} else {
			q.SortDir = Asc
		}
		return
	}
	q.SortKey = key
	q.SortDir = Asc
}

// SetPage moves to the given 1-based page without touching search, filters
// or sort. Values below 1 are clamped to 1; Apply clamps the upper bound.
func (q *Query) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q.Page = page
}
