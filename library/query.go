package library

import (
	"sort"
	"strings"
)

// PageSize is the fixed number of books shown per page.
const PageSize = 10

// SortField selects the book attribute a listing is ordered by.
type SortField string

const (
	SortByTitle    SortField = "title"
	SortByPrice    SortField = "price"
	SortByQuantity SortField = "quantity"
)

// SortOrder is the listing direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// BookQuery holds every knob of the books listing: free-text search,
// category filter, price range, sort and page. The zero value is not
// meaningful; start from DefaultQuery.
type BookQuery struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     SortField
	Order    SortOrder
	Page     int
}

// DefaultQuery returns the documented reset state: no search, all
// categories, price 0..100000, title ascending, page 1.
func DefaultQuery() BookQuery {
	return BookQuery{
		Search:   "",
		Category: "All",
		MinPrice: 0,
		MaxPrice: 100000,
		Sort:     SortByTitle,
		Order:    Ascending,
		Page:     1,
	}
}

// Reset restores every parameter to its default in one assignment.
func (q *BookQuery) Reset() { *q = DefaultQuery() }

// BookPage is the visible slice of a filtered, sorted collection.
type BookPage struct {
	Books      []Book
	Page       int
	TotalPages int
	Filtered   int
}

// HasPrev reports whether the Prev control is enabled.
func (p BookPage) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether the Next control is enabled.
func (p BookPage) HasNext() bool { return p.Page < p.TotalPages }

// Matches reports whether a single book passes the query's filter stages:
// case-insensitive substring search over title, author and ISBN (ISBN only
// when present), exact category match with "All" passing everything, and an
// inclusive price range.
func (q BookQuery) Matches(b Book) bool {
	needle := strings.ToLower(q.Search)
	hit := strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle) ||
		(b.ISBN != "" && strings.Contains(strings.ToLower(b.ISBN), needle))
	if !hit {
		return false
	}
	if q.Category != "All" && b.DisplayCategory() != q.Category {
		return false
	}
	return b.Price >= q.MinPrice && b.Price <= q.MaxPrice
}

// less compares two books on the query's sort field, ascending. Titles
// compare as lower-cased strings; price and quantity compare numerically so
// that 9.99 sorts before 12.99.
func less(a, b Book, field SortField) bool {
	switch field {
	case SortByPrice:
		return a.Price < b.Price
	case SortByQuantity:
		return a.Quantity < b.Quantity
	default:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	}
}

// Apply runs the full filter, sort and paginate pipeline and returns the
// visible page. It never mutates books and is referentially transparent:
// identical inputs always produce an identical page.
func (q BookQuery) Apply(books []Book) BookPage {
	filtered := make([]Book, 0, len(books))
	for _, b := range books {
		if q.Matches(b) {
			filtered = append(filtered, b)
		}
	}

	// Stability is load-bearing: ties keep their original order.
	sort.SliceStable(filtered, func(i, j int) bool {
		if q.Order == Descending {
			return less(filtered[j], filtered[i], q.Sort)
		}
		return less(filtered[i], filtered[j], q.Sort)
	})

	totalPages := (len(filtered) + PageSize - 1) / PageSize

	page := q.Page
	switch {
	case page < 1 || totalPages == 0:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > len(filtered) {
		lo = len(filtered)
	}
	if hi > len(filtered) {
		hi = len(filtered)
	}

	return BookPage{
		Books:      filtered[lo:hi],
		Page:       page,
		TotalPages: totalPages,
		Filtered:   len(filtered),
	}
}

// Categories derives the selectable category universe from the unfiltered
// collection: "All" first, then each distinct category (missing ones count
// as "Uncategorized") in first-appearance order.
func Categories(books []Book) []string {
	cats := []string{"All"}
	seen := make(map[string]bool)
	for _, b := range books {
		c := b.DisplayCategory()
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	return cats
}
