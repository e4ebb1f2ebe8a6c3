package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/sbilibin2017/foodgram/internal/models"
)

// pagination is a 1-based page request.
type pagination struct {
	page  int
	limit int
}

// parsePagination reads the page and limit query parameters.
// A missing or non-positive limit falls back to defaultLimit.
func parsePagination(r *http.Request, defaultLimit int) (pagination, error) {
	q := r.URL.Query()
	p := pagination{page: 1, limit: defaultLimit}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, errInvalidPage
		}
		p.page = page
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.limit = limit
		}
	}
	return p, nil
}

func (p pagination) offset() int {
	return (p.page - 1) * p.limit
}

// check rejects pages past the last one. The first page always exists.
func (p pagination) check(count int) error {
	if p.page > 1 && p.offset() >= count {
		return errInvalidPage
	}
	return nil
}

func newPage[T any](r *http.Request, p pagination, results []T, count int) models.Page[T] {
	if results == nil {
		results = []T{}
	}
	page := models.Page[T]{Count: count, Results: results}
	if p.offset()+len(results) < count {
		next := pageURL(r, p.page+1)
		page.Next = &next
	}
	if p.page > 1 {
		prev := pageURL(r, p.page-1)
		page.Previous = &prev
	}
	return page
}

// pageURL rebuilds the absolute request URL pointing at another page.
// The page parameter is dropped for the first page.
func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
