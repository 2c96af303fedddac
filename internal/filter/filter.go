// Package filter is the generic query-shaping layer behind every list
// endpoint: field equality/range filters with comparison suffixes, column
// projection, multi-field sorting and page/limit pagination, translated into
// store-level queries.
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Reserved option names are never interpreted as field filters.
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var operators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"in":  "IN",
}

// Condition is one translated filter clause.
type Condition struct {
	Column string
	Op     string
	Value  interface{}
}

// Options is the parsed query shape for a list request.
type Options struct {
	Conditions []Condition
	Select     []string
	Sort       []string
	Page       int
	Limit      int
}

// PageInfo points at an adjacent page.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the previous/next indicators for a page.
type Pagination struct {
	Prev *PageInfo `json:"prev,omitempty"`
	Next *PageInfo `json:"next,omitempty"`
}

// Result is one filtered, sorted page of T plus its metadata.
type Result[T any] struct {
	Data       []T
	Count      int
	Total      int64
	Pagination Pagination
}

// Parse reads request query values into Options. The allowed map translates
// exposed field names to store columns; anything not in it is ignored rather
// than misread as an equality filter.
func Parse(values url.Values, allowed map[string]string) Options {
	opts := Options{Page: 1, Limit: DefaultLimit}

	for key, vals := range values {
		if len(vals) == 0 || reserved[key] {
			continue
		}
		field, op, ok := splitOperator(key)
		if !ok {
			continue
		}
		column, ok := allowed[field]
		if !ok {
			continue
		}
		if op == "IN" {
			opts.Conditions = append(opts.Conditions, Condition{Column: column, Op: op, Value: coerceList(vals[0])})
			continue
		}
		opts.Conditions = append(opts.Conditions, Condition{Column: column, Op: op, Value: coerce(vals[0])})
	}

	if sel := values.Get("select"); sel != "" {
		for _, field := range strings.Split(sel, ",") {
			if column, ok := allowed[strings.TrimSpace(field)]; ok {
				opts.Select = append(opts.Select, column)
			}
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			desc := strings.HasPrefix(field, "-")
			field = strings.TrimPrefix(field, "-")
			column, ok := allowed[field]
			if !ok {
				continue
			}
			if desc {
				column += " DESC"
			}
			opts.Sort = append(opts.Sort, column)
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if opts.Limit > MaxLimit {
		opts.Limit = MaxLimit
	}

	return opts
}

// Apply attaches the parsed conditions, projection and sort order to a query.
func (o Options) Apply(q *gorm.DB) *gorm.DB {
	for _, cond := range o.Conditions {
		q = q.Where(cond.Column+" "+cond.Op+" ?", cond.Value)
	}
	if len(o.Select) > 0 {
		q = q.Select(o.Select)
	}
	for _, order := range o.Sort {
		q = q.Order(order)
	}
	return q
}

// Run executes a filtered, paginated list query and assembles the page
// metadata. The base query carries any fixed scoping (e.g. a parent id).
func Run[T any](base *gorm.DB, values url.Values, allowed map[string]string) (*Result[T], error) {
	opts := Parse(values, allowed)

	scoped := opts.Apply(base.Model(new(T)))

	var total int64
	if err := scoped.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (opts.Page - 1) * opts.Limit
	var data []T
	if err := scoped.Offset(offset).Limit(opts.Limit).Find(&data).Error; err != nil {
		return nil, err
	}

	result := &Result[T]{Data: data, Count: len(data), Total: total}
	if offset > 0 {
		result.Pagination.Prev = &PageInfo{Page: opts.Page - 1, Limit: opts.Limit}
	}
	if int64(offset+len(data)) < total {
		result.Pagination.Next = &PageInfo{Page: opts.Page + 1, Limit: opts.Limit}
	}
	return result, nil
}

// splitOperator separates the comparison suffix from a query key. A bracket
// suffix that names no known operator makes the whole key unrecognized, the
// same as an unknown field.
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "=", true
	}
	suffix := key[open+1 : len(key)-1]
	if sql, known := operators[suffix]; known {
		return key[:open], sql, true
	}
	return "", "", false
}

// coerce turns numeric-looking values into numbers so range comparisons hit
// numeric columns with the right type.
func coerce(v string) interface{} {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func coerceList(v string) []interface{} {
	parts := strings.Split(v, ",")
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		out = append(out, coerce(strings.TrimSpace(p)))
	}
	return out
}
