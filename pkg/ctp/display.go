package ctp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholders rendered in place of absent values.
const (
	PlaceholderNoName       = "No name"
	PlaceholderNoKey        = "No key"
	PlaceholderRootCategory = "Root category"
	PlaceholderAnonymous    = "Anonymous"
	PlaceholderGuest        = "Guest"
)

// DateLayout is the layout used for created dates.
const DateLayout = "2006-01-02"

// DisplayField is one labelled value of a record.
type DisplayField struct {
	Label string
	Value string
}

// DisplayRecord is a flattened, presentation-ready view of a resource.
type DisplayRecord interface {
	Kind() ResourceKind
	Title() string
	Fields() []DisplayField
}

// DisplayPage is a normalized page of records.
type DisplayPage struct {
	Kind    ResourceKind    `json:"kind"    yaml:"kind"`
	Total   int             `json:"total"   yaml:"total"`
	Count   int             `json:"count"   yaml:"count"`
	Offset  int             `json:"offset"  yaml:"offset"`
	Records []DisplayRecord `json:"records" yaml:"records"`
}

// ProductRecord is the display view of a product.
type ProductRecord struct {
	ID           string `json:"id"           yaml:"id"`
	Name         string `json:"name"         yaml:"name"`
	Slug         string `json:"slug"         yaml:"slug"`
	VariantCount int    `json:"variantCount" yaml:"variantCount"`
	Published    bool   `json:"published"    yaml:"published"`
}

func (r ProductRecord) Kind() ResourceKind { return KindProduct }
func (r ProductRecord) Title() string      { return r.Name }

func (r ProductRecord) Fields() []DisplayField {
	return []DisplayField{
		{"ID", r.ID},
		{"Slug", r.Slug},
		{"Variants", strconv.Itoa(r.VariantCount)},
		{"Published", strconv.FormatBool(r.Published)},
	}
}

// CategoryRecord is the display view of a category.
type CategoryRecord struct {
	ID     string `json:"id"     yaml:"id"`
	Name   string `json:"name"   yaml:"name"`
	Key    string `json:"key"    yaml:"key"`
	Slug   string `json:"slug"   yaml:"slug"`
	Parent string `json:"parent" yaml:"parent"`
}

func (r CategoryRecord) Kind() ResourceKind { return KindCategory }
func (r CategoryRecord) Title() string      { return r.Name }

func (r CategoryRecord) Fields() []DisplayField {
	return []DisplayField{
		{"ID", r.ID},
		{"Key", r.Key},
		{"Slug", r.Slug},
		{"Parent", r.Parent},
	}
}

// CustomerRecord is the display view of a customer.
type CustomerRecord struct {
	ID       string `json:"id"       yaml:"id"`
	FullName string `json:"fullName" yaml:"fullName"`
	Email    string `json:"email"    yaml:"email"`
	Key      string `json:"key"      yaml:"key"`
}

func (r CustomerRecord) Kind() ResourceKind { return KindCustomer }
func (r CustomerRecord) Title() string      { return r.FullName }

func (r CustomerRecord) Fields() []DisplayField {
	return []DisplayField{
		{"ID", r.ID},
		{"Email", r.Email},
		{"Key", r.Key},
	}
}

// CartRecord is the display view of a cart.
type CartRecord struct {
	ID            string `json:"id"            yaml:"id"`
	CustomerID    string `json:"customerId"    yaml:"customerId"`
	CartState     string `json:"cartState"     yaml:"cartState"`
	LineItemCount int    `json:"lineItemCount" yaml:"lineItemCount"`
	TotalItems    int    `json:"totalItems"    yaml:"totalItems"`
	TotalPrice    string `json:"totalPrice"    yaml:"totalPrice"`
	Created       string `json:"created"       yaml:"created"`
}

func (r CartRecord) Kind() ResourceKind { return KindCart }
func (r CartRecord) Title() string      { return "Cart" }

func (r CartRecord) Fields() []DisplayField {
	return []DisplayField{
		{"ID", r.ID},
		{"Customer ID", r.CustomerID},
		{"Cart State", r.CartState},
		{"Line Items", strconv.Itoa(r.LineItemCount)},
		{"Total Items", strconv.Itoa(r.TotalItems)},
		{"Total Price", r.TotalPrice},
		{"Created", r.Created},
	}
}

// OrderRecord is the display view of an order.
type OrderRecord struct {
	ID            string `json:"id"            yaml:"id"`
	OrderNumber   string `json:"orderNumber"   yaml:"orderNumber"`
	CustomerID    string `json:"customerId"    yaml:"customerId"`
	OrderState    string `json:"orderState"    yaml:"orderState"`
	PaymentState  string `json:"paymentState"  yaml:"paymentState"`
	ShipmentState string `json:"shipmentState" yaml:"shipmentState"`
	LineItemCount int    `json:"lineItemCount" yaml:"lineItemCount"`
	TotalItems    int    `json:"totalItems"    yaml:"totalItems"`
	TotalPrice    string `json:"totalPrice"    yaml:"totalPrice"`
	Created       string `json:"created"       yaml:"created"`
}

func (r OrderRecord) Kind() ResourceKind { return KindOrder }
func (r OrderRecord) Title() string      { return "Order" }

func (r OrderRecord) Fields() []DisplayField {
	return []DisplayField{
		{"ID", r.ID},
		{"Order Number", r.OrderNumber},
		{"Customer ID", r.CustomerID},
		{"Order State", r.OrderState},
		{"Payment State", r.PaymentState},
		{"Shipment State", r.ShipmentState},
		{"Line Items", strconv.Itoa(r.LineItemCount)},
		{"Total Items", strconv.Itoa(r.TotalItems)},
		{"Total Price", r.TotalPrice},
		{"Created", r.Created},
	}
}

// NewProductRecord projects p. The variant count includes the master variant.
func NewProductRecord(p *Product) (ProductRecord, error) {
	if p.MasterData == nil {
		return ProductRecord{}, &NormalizationError{Kind: KindProduct, Field: "masterData"}
	}

	current := p.MasterData.Current
	if current == nil {
		return ProductRecord{}, &NormalizationError{Kind: KindProduct, Field: "masterData.current"}
	}

	if current.Variants == nil {
		return ProductRecord{}, &NormalizationError{Kind: KindProduct, Field: "masterData.current.variants"}
	}

	return ProductRecord{
		ID:           p.ID,
		Name:         current.Name.Display(PlaceholderNoName),
		Slug:         current.Slug.Display(""),
		VariantCount: len(current.Variants) + 1,
		Published:    p.MasterData.Published,
	}, nil
}

// NewCategoryRecord projects c.
func NewCategoryRecord(c *Category) CategoryRecord {
	var parentID *string
	if c.Parent != nil {
		parentID = &c.Parent.ID
	}

	return CategoryRecord{
		ID:     c.ID,
		Name:   c.Name.Display(PlaceholderNoName),
		Key:    Coalesce(PlaceholderNoKey, c.Key),
		Slug:   c.Slug.Display(""),
		Parent: Coalesce(PlaceholderRootCategory, parentID),
	}
}

// NewCustomerRecord projects c. Empty name parts are skipped.
func NewCustomerRecord(c *Customer) CustomerRecord {
	var parts []string

	for _, part := range []*string{c.FirstName, c.LastName} {
		if part != nil && *part != "" {
			parts = append(parts, *part)
		}
	}

	fullName := PlaceholderNoName
	if len(parts) > 0 {
		fullName = strings.Join(parts, " ")
	}

	return CustomerRecord{
		ID:       c.ID,
		FullName: fullName,
		Email:    c.Email,
		Key:      Coalesce(PlaceholderNoKey, c.Key),
	}
}

// NewCartRecord projects c.
func NewCartRecord(c *Cart) (CartRecord, error) {
	if c.LineItems == nil {
		return CartRecord{}, &NormalizationError{Kind: KindCart, Field: "lineItems"}
	}

	return CartRecord{
		ID:            c.ID,
		CustomerID:    Coalesce(PlaceholderAnonymous, c.CustomerID),
		CartState:     c.CartState,
		LineItemCount: len(c.LineItems),
		TotalItems:    TotalQuantity(c.LineItems),
		TotalPrice:    FormatMoney(c.TotalPrice),
		Created:       formatDate(c.CreatedAt),
	}, nil
}

// NewOrderRecord projects o.
func NewOrderRecord(o *Order) (OrderRecord, error) {
	if o.LineItems == nil {
		return OrderRecord{}, &NormalizationError{Kind: KindOrder, Field: "lineItems"}
	}

	return OrderRecord{
		ID:            o.ID,
		OrderNumber:   Coalesce(NotAvailable, o.OrderNumber),
		CustomerID:    Coalesce(PlaceholderGuest, o.CustomerID),
		OrderState:    o.OrderState,
		PaymentState:  Coalesce(NotAvailable, o.PaymentState),
		ShipmentState: Coalesce(NotAvailable, o.ShipmentState),
		LineItemCount: len(o.LineItems),
		TotalItems:    TotalQuantity(o.LineItems),
		TotalPrice:    FormatMoney(o.TotalPrice),
		Created:       formatDate(o.CreatedAt),
	}, nil
}

// TotalQuantity sums the quantity of every line item.
func TotalQuantity(items []LineItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}

	return total
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}

	return t.Format(DateLayout)
}

// Normalize decodes a paginated list body of the given kind and projects
// every result into a DisplayRecord, preserving input order. A body without a
// "results" array fails with *NormalizationError; an empty array yields an
// empty page.
func Normalize(kind ResourceKind, body []byte) (*DisplayPage, error) {
	switch kind {
	case KindProduct:
		return normalizePage(kind, body, NormalizeProducts)
	case KindCategory:
		return normalizePage(kind, body, NormalizeCategories)
	case KindCustomer:
		return normalizePage(kind, body, NormalizeCustomers)
	case KindCart:
		return normalizePage(kind, body, NormalizeCarts)
	case KindOrder:
		return normalizePage(kind, body, NormalizeOrders)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
}

// NormalizeOne decodes a single resource body of the given kind.
func NormalizeOne(kind ResourceKind, body []byte) (DisplayRecord, error) {
	switch kind {
	case KindProduct:
		return normalizeOne(kind, body, func(p *Product) (DisplayRecord, error) {
			return NewProductRecord(p)
		})
	case KindCategory:
		return normalizeOne(kind, body, func(c *Category) (DisplayRecord, error) {
			return NewCategoryRecord(c), nil
		})
	case KindCustomer:
		return normalizeOne(kind, body, func(c *Customer) (DisplayRecord, error) {
			return NewCustomerRecord(c), nil
		})
	case KindCart:
		return normalizeOne(kind, body, func(c *Cart) (DisplayRecord, error) {
			return NewCartRecord(c)
		})
	case KindOrder:
		return normalizeOne(kind, body, func(o *Order) (DisplayRecord, error) {
			return NewOrderRecord(o)
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResourceKind, kind)
	}
}

// NormalizeList projects an already decoded page.
func NormalizeList[T any](kind ResourceKind, list *PagedQueryResponse[T], project func(*T) (DisplayRecord, error)) (*DisplayPage, error) {
	if list.Results == nil {
		return nil, &NormalizationError{Kind: kind, Field: "results"}
	}

	page := &DisplayPage{
		Kind:    kind,
		Total:   list.TotalOrCount(),
		Count:   list.Count,
		Offset:  list.Offset,
		Records: make([]DisplayRecord, 0, len(list.Results)),
	}

	for i := range list.Results {
		record, err := project(&list.Results[i])
		if err != nil {
			return nil, prefixField(err, fmt.Sprintf("results[%d].", i))
		}

		page.Records = append(page.Records, record)
	}

	return page, nil
}

// NormalizeProducts projects a decoded product page.
func NormalizeProducts(list *ProductList) (*DisplayPage, error) {
	return NormalizeList(KindProduct, list, func(p *Product) (DisplayRecord, error) {
		return NewProductRecord(p)
	})
}

// NormalizeCategories projects a decoded category page.
func NormalizeCategories(list *CategoryList) (*DisplayPage, error) {
	return NormalizeList(KindCategory, list, func(c *Category) (DisplayRecord, error) {
		return NewCategoryRecord(c), nil
	})
}

// NormalizeCustomers projects a decoded customer page.
func NormalizeCustomers(list *CustomerList) (*DisplayPage, error) {
	return NormalizeList(KindCustomer, list, func(c *Customer) (DisplayRecord, error) {
		return NewCustomerRecord(c), nil
	})
}

// NormalizeCarts projects a decoded cart page.
func NormalizeCarts(list *CartList) (*DisplayPage, error) {
	return NormalizeList(KindCart, list, func(c *Cart) (DisplayRecord, error) {
		return NewCartRecord(c)
	})
}

// NormalizeOrders projects a decoded order page.
func NormalizeOrders(list *OrderList) (*DisplayPage, error) {
	return NormalizeList(KindOrder, list, func(o *Order) (DisplayRecord, error) {
		return NewOrderRecord(o)
	})
}

func normalizePage[T any](kind ResourceKind, body []byte, project func(*PagedQueryResponse[T]) (*DisplayPage, error)) (*DisplayPage, error) {
	var list PagedQueryResponse[T]

	err := json.Unmarshal(body, &list)
	if err != nil {
		return nil, &NormalizationError{Kind: kind, Field: "body", Err: err}
	}

	return project(&list)
}

func normalizeOne[T any](kind ResourceKind, body []byte, project func(*T) (DisplayRecord, error)) (DisplayRecord, error) {
	var resource T

	err := json.Unmarshal(body, &resource)
	if err != nil {
		return nil, &NormalizationError{Kind: kind, Field: "body", Err: err}
	}

	return project(&resource)
}

func prefixField(err error, prefix string) error {
	if normErr, ok := err.(*NormalizationError); ok {
		return &NormalizationError{Kind: normErr.Kind, Field: prefix + normErr.Field, Err: normErr.Err}
	}

	return err
}
