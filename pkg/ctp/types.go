package ctp

// PagedQueryResponse represents a paginated list response.
type PagedQueryResponse[T any] struct {
	Limit   int  `json:"limit"           yaml:"limit"`
	Offset  int  `json:"offset"          yaml:"offset"`
	Count   int  `json:"count"           yaml:"count"`
	Total   *int `json:"total,omitempty" yaml:"total,omitempty"`
	Results []T  `json:"results"         yaml:"results"`
}

// TotalOrCount returns Total when the server reported it, otherwise Count.
func (p *PagedQueryResponse[T]) TotalOrCount() int {
	if p.Total != nil {
		return *p.Total
	}

	return p.Count
}

// HasMore reports whether results exist beyond this page.
func (p *PagedQueryResponse[T]) HasMore() bool {
	if p.Total == nil {
		return p.Limit > 0 && p.Count == p.Limit
	}

	return p.Offset+p.Count < *p.Total
}

// ProductList represents a paginated list of Product resources.
type ProductList = PagedQueryResponse[Product]

// CategoryList represents a paginated list of Category resources.
type CategoryList = PagedQueryResponse[Category]

// CustomerList represents a paginated list of Customer resources.
type CustomerList = PagedQueryResponse[Customer]

// CartList represents a paginated list of Cart resources.
type CartList = PagedQueryResponse[Cart]

// OrderList represents a paginated list of Order resources.
type OrderList = PagedQueryResponse[Order]
