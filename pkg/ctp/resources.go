package ctp

import (
	"encoding/json"
	"time"
)

// Reference points to another resource.
type Reference struct {
	TypeID string          `json:"typeId"        yaml:"typeId"`
	ID     string          `json:"id"            yaml:"id"`
	Obj    json.RawMessage `json:"obj,omitempty" yaml:"-"`
}

// ResourceIdentifier identifies a resource by id or key in drafts.
type ResourceIdentifier struct {
	TypeID string `json:"typeId"        yaml:"typeId"`
	ID     string `json:"id,omitempty"  yaml:"id,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
}

// Money is a typed money value in the smallest currency unit.
type Money struct {
	Type           string `json:"type,omitempty"           yaml:"type,omitempty"`
	CurrencyCode   string `json:"currencyCode"             yaml:"currencyCode"`
	CentAmount     int64  `json:"centAmount"               yaml:"centAmount"`
	FractionDigits int    `json:"fractionDigits,omitempty" yaml:"fractionDigits,omitempty"`
}

// Product represents a product resource.
type Product struct {
	ID             string              `json:"id"                    yaml:"id"`
	Version        int64               `json:"version"               yaml:"version"`
	Key            *string             `json:"key,omitempty"         yaml:"key,omitempty"`
	ProductType    Reference           `json:"productType"           yaml:"productType"`
	MasterData     *ProductCatalogData `json:"masterData"            yaml:"masterData"`
	CreatedAt      time.Time           `json:"createdAt"             yaml:"createdAt"`
	LastModifiedAt time.Time           `json:"lastModifiedAt"        yaml:"lastModifiedAt"`
}

// ProductCatalogData holds the current and staged projections of a product.
type ProductCatalogData struct {
	Published        bool         `json:"published"        yaml:"published"`
	HasStagedChanges bool         `json:"hasStagedChanges" yaml:"hasStagedChanges"`
	Current          *ProductData `json:"current"          yaml:"current"`
	Staged           *ProductData `json:"staged,omitempty" yaml:"staged,omitempty"`
}

// ProductData is one projection of a product.
type ProductData struct {
	Name          LocalizedString  `json:"name"                  yaml:"-"`
	Slug          LocalizedString  `json:"slug"                  yaml:"-"`
	Description   *LocalizedString `json:"description,omitempty" yaml:"-"`
	Categories    []Reference      `json:"categories"            yaml:"categories"`
	MasterVariant ProductVariant   `json:"masterVariant"         yaml:"masterVariant"`
	Variants      []ProductVariant `json:"variants"              yaml:"variants"`
}

// ProductVariant is one SKU of a product.
type ProductVariant struct {
	ID     int     `json:"id"               yaml:"id"`
	SKU    *string `json:"sku,omitempty"    yaml:"sku,omitempty"`
	Key    *string `json:"key,omitempty"    yaml:"key,omitempty"`
	Prices []Price `json:"prices,omitempty" yaml:"prices,omitempty"`
	Images []Image `json:"images,omitempty" yaml:"images,omitempty"`
}

// Price is a variant price.
type Price struct {
	ID    string `json:"id"    yaml:"id"`
	Value Money  `json:"value" yaml:"value"`
}

// Image is a variant image.
type Image struct {
	URL   string `json:"url"             yaml:"url"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Category represents a category resource.
type Category struct {
	ID             string           `json:"id"                    yaml:"id"`
	Version        int64            `json:"version"               yaml:"version"`
	Key            *string          `json:"key,omitempty"         yaml:"key,omitempty"`
	Name           LocalizedString  `json:"name"                  yaml:"-"`
	Slug           LocalizedString  `json:"slug"                  yaml:"-"`
	Description    *LocalizedString `json:"description,omitempty" yaml:"-"`
	Parent         *Reference       `json:"parent,omitempty"      yaml:"parent,omitempty"`
	Ancestors      []Reference      `json:"ancestors"             yaml:"ancestors"`
	OrderHint      string           `json:"orderHint"             yaml:"orderHint"`
	CreatedAt      time.Time        `json:"createdAt"             yaml:"createdAt"`
	LastModifiedAt time.Time        `json:"lastModifiedAt"        yaml:"lastModifiedAt"`
}

// Customer represents a customer resource.
type Customer struct {
	ID              string    `json:"id"                       yaml:"id"`
	Version         int64     `json:"version"                  yaml:"version"`
	Key             *string   `json:"key,omitempty"            yaml:"key,omitempty"`
	CustomerNumber  *string   `json:"customerNumber,omitempty" yaml:"customerNumber,omitempty"`
	Email           string    `json:"email"                    yaml:"email"`
	FirstName       *string   `json:"firstName,omitempty"      yaml:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"       yaml:"lastName,omitempty"`
	IsEmailVerified bool      `json:"isEmailVerified"          yaml:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"                yaml:"createdAt"`
	LastModifiedAt  time.Time `json:"lastModifiedAt"           yaml:"lastModifiedAt"`
}

// LineItem is a product/quantity entry of a cart or order.
type LineItem struct {
	ID         string          `json:"id"         yaml:"id"`
	ProductID  string          `json:"productId"  yaml:"productId"`
	Name       LocalizedString `json:"name"       yaml:"-"`
	Quantity   int             `json:"quantity"   yaml:"quantity"`
	TotalPrice Money           `json:"totalPrice" yaml:"totalPrice"`
}

// Cart represents a cart resource.
type Cart struct {
	ID             string     `json:"id"                      yaml:"id"`
	Version        int64      `json:"version"                 yaml:"version"`
	Key            *string    `json:"key,omitempty"           yaml:"key,omitempty"`
	CustomerID     *string    `json:"customerId,omitempty"    yaml:"customerId,omitempty"`
	CustomerEmail  *string    `json:"customerEmail,omitempty" yaml:"customerEmail,omitempty"`
	AnonymousID    *string    `json:"anonymousId,omitempty"   yaml:"anonymousId,omitempty"`
	CartState      string     `json:"cartState"               yaml:"cartState"`
	LineItems      []LineItem `json:"lineItems"               yaml:"lineItems"`
	TotalPrice     *Money     `json:"totalPrice,omitempty"    yaml:"totalPrice,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"               yaml:"createdAt"`
	LastModifiedAt time.Time  `json:"lastModifiedAt"          yaml:"lastModifiedAt"`
}

// Order represents an order resource.
type Order struct {
	ID             string     `json:"id"                      yaml:"id"`
	Version        int64      `json:"version"                 yaml:"version"`
	OrderNumber    *string    `json:"orderNumber,omitempty"   yaml:"orderNumber,omitempty"`
	CustomerID     *string    `json:"customerId,omitempty"    yaml:"customerId,omitempty"`
	CustomerEmail  *string    `json:"customerEmail,omitempty" yaml:"customerEmail,omitempty"`
	OrderState     string     `json:"orderState"              yaml:"orderState"`
	PaymentState   *string    `json:"paymentState,omitempty"  yaml:"paymentState,omitempty"`
	ShipmentState  *string    `json:"shipmentState,omitempty" yaml:"shipmentState,omitempty"`
	LineItems      []LineItem `json:"lineItems"               yaml:"lineItems"`
	TotalPrice     *Money     `json:"totalPrice,omitempty"    yaml:"totalPrice,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"               yaml:"createdAt"`
	LastModifiedAt time.Time  `json:"lastModifiedAt"          yaml:"lastModifiedAt"`
}

// ProductDraft is the request body for creating a product.
type ProductDraft struct {
	ProductType   ResourceIdentifier   `json:"productType"             yaml:"productType"`
	Key           string               `json:"key,omitempty"           yaml:"key,omitempty"`
	Name          LocalizedString      `json:"name"                    yaml:"-"`
	Slug          LocalizedString      `json:"slug"                    yaml:"-"`
	MasterVariant *ProductVariantDraft `json:"masterVariant,omitempty" yaml:"masterVariant,omitempty"`
	Publish       bool                 `json:"publish,omitempty"       yaml:"publish,omitempty"`
}

// ProductVariantDraft is the variant part of a ProductDraft.
type ProductVariantDraft struct {
	SKU string `json:"sku,omitempty" yaml:"sku,omitempty"`
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// CustomerDraft is the request body for signing up a customer.
type CustomerDraft struct {
	Email     string `json:"email"               yaml:"email"`
	Password  string `json:"password"            yaml:"-"`
	FirstName string `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"  yaml:"lastName,omitempty"`
	Key       string `json:"key,omitempty"       yaml:"key,omitempty"`
}

// CustomerSignInResult is returned by a customer sign-up.
type CustomerSignInResult struct {
	Customer Customer `json:"customer"       yaml:"customer"`
	Cart     *Cart    `json:"cart,omitempty" yaml:"cart,omitempty"`
}
