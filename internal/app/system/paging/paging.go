// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 500

// Page is an optional offset window taken from ?limit=&page=.
// A zero Limit means "everything", which is what list endpoints return
// when the client does not ask for a page.
type Page struct {
	Limit int64
	Skip  int64
}

// Parse reads limit (clamped to MaxLimit) and the 1-based page number.
// Missing or invalid values are ignored.
func Parse(r *http.Request) Page {
	limit := atoi(query.Get(r, "limit"))
	if limit <= 0 {
		return Page{}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	page := atoi(query.Get(r, "page"))
	if page < 1 {
		page = 1
	}
	return Page{Limit: int64(limit), Skip: int64(page-1) * int64(limit)}
}

// Apply sets limit and skip on opts when the page is bounded.
func (p Page) Apply(opts *options.FindOptions) *options.FindOptions {
	if p.Limit > 0 {
		opts.SetLimit(p.Limit).SetSkip(p.Skip)
	}
	return opts
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
