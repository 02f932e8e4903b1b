package ctp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ResourceKind identifies one of the resource collections of a project.
type ResourceKind string

const (
	KindProduct  ResourceKind = "product"
	KindCategory ResourceKind = "category"
	KindCustomer ResourceKind = "customer"
	KindCart     ResourceKind = "cart"
	KindOrder    ResourceKind = "order"
)

// AllKinds lists the kinds in the order the fetch scenario walks them.
var AllKinds = []ResourceKind{KindProduct, KindCategory, KindCustomer, KindCart, KindOrder}

// Plural returns the collection name used in resource paths.
func (k ResourceKind) Plural() string {
	switch k {
	case KindProduct:
		return "products"
	case KindCategory:
		return "categories"
	case KindCustomer:
		return "customers"
	case KindCart:
		return "carts"
	case KindOrder:
		return "orders"
	default:
		return string(k)
	}
}

// Valid reports whether k is a known kind.
func (k ResourceKind) Valid() bool {
	switch k {
	case KindProduct, KindCategory, KindCustomer, KindCart, KindOrder:
		return true
	default:
		return false
	}
}

// ParseResourceKind accepts singular or plural names, case-insensitively.
func ParseResourceKind(s string) (ResourceKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, kind := range AllKinds {
		if needle == string(kind) || needle == kind.Plural() {
			return kind, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownResourceKind, s)
}

// Pagination selects a window of a query result.
type Pagination struct {
	Limit  int `json:"limit"  yaml:"limit"`
	Offset int `json:"offset" yaml:"offset"`
}

// RequestSpec describes one REST call against a resource collection.
// A non-nil Body turns the call into a POST.
type RequestSpec struct {
	Kind       ResourceKind
	ID         string
	Pagination *Pagination
	Body       interface{}
}

// Path returns the project-scoped resource path.
func (s *RequestSpec) Path(projectKey string) (string, error) {
	if !s.Kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownResourceKind, s.Kind)
	}

	path := "/" + url.PathEscape(projectKey) + "/" + s.Kind.Plural()
	if s.ID != "" {
		path += "/" + url.PathEscape(s.ID)
	}

	return path, nil
}

// Query returns the pagination query string values. A paged call always
// carries an offset, zero included.
func (s *RequestSpec) Query() url.Values {
	if s.Pagination == nil {
		return nil
	}

	values := url.Values{}
	if s.Pagination.Limit > 0 {
		values.Set("limit", strconv.Itoa(s.Pagination.Limit))
	}

	values.Set("offset", strconv.Itoa(max(s.Pagination.Offset, 0)))

	return values
}

// RawResponse is the undecoded result of a successful call.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// QueryParams represents the query options of a list call.
type QueryParams struct {
	Limit     int
	Offset    int
	Sort      []string
	Where     []string
	Expand    []string
	WithTotal *bool
}

// NewQueryParams creates empty query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithLimit sets the page size.
func (q *QueryParams) WithLimit(limit int) *QueryParams {
	q.Limit = limit

	return q
}

// WithOffset sets the page offset.
func (q *QueryParams) WithOffset(offset int) *QueryParams {
	q.Offset = offset

	return q
}

// WithSort appends a sort expression such as "createdAt desc".
func (q *QueryParams) WithSort(sort string) *QueryParams {
	q.Sort = append(q.Sort, sort)

	return q
}

// WithWhere appends a query predicate.
func (q *QueryParams) WithWhere(predicate string) *QueryParams {
	q.Where = append(q.Where, predicate)

	return q
}

// WithExpand appends a reference expansion path.
func (q *QueryParams) WithExpand(path string) *QueryParams {
	q.Expand = append(q.Expand, path)

	return q
}

// ToValues converts the parameters to URL values. Once a limit is set the
// offset is sent as well, zero included.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
		values.Set("offset", strconv.Itoa(max(q.Offset, 0)))
	}

	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}

	for _, sort := range q.Sort {
		values.Add("sort", sort)
	}

	for _, where := range q.Where {
		values.Add("where", where)
	}

	for _, expand := range q.Expand {
		values.Add("expand", expand)
	}

	if q.WithTotal != nil {
		values.Set("withTotal", strconv.FormatBool(*q.WithTotal))
	}

	return values
}
