// Package scenario holds the canned GraphQL documents and demo drafts used by
// the fetch and create scenarios.
package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/fivetwenty-io/ctp/internal/constants"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// ProductsQuery lists the first page of products.
const ProductsQuery = `query Products($limit: Int) {
  products(limit: $limit) {
    total
    results {
      id
      key
      masterData {
        current {
          name(locale: "en")
        }
      }
    }
  }
}`

// CustomersQuery lists the first page of customers.
const CustomersQuery = `query Customers($limit: Int) {
  customers(limit: $limit) {
    total
    results {
      id
      email
      firstName
      lastName
    }
  }
}`

// CustomerSignUpMutation signs up one customer.
const CustomerSignUpMutation = `mutation SignUp($draft: CustomerSignUpDraft!) {
  customerSignUp(draft: $draft) {
    customer {
      id
      email
      firstName
      lastName
      createdAt
    }
  }
}`

// CreateProductMutation creates one product.
const CreateProductMutation = `mutation CreateProduct($draft: ProductDraft!) {
  createProduct(draft: $draft) {
    id
    masterData {
      current {
        name(locale: "en")
        slug(locale: "en")
      }
    }
  }
}`

// Step is one named GraphQL call of a scenario.
type Step struct {
	Name    string
	Request *ctp.GraphQLRequest
}

// FetchSteps returns the GraphQL fetch scenario: products, then customers.
func FetchSteps() []Step {
	vars := map[string]interface{}{"limit": constants.DemoPageSize}

	return []Step{
		{Name: "GraphQL Products", Request: &ctp.GraphQLRequest{Query: ProductsQuery, OperationName: "Products", Variables: vars}},
		{Name: "GraphQL Customers", Request: &ctp.GraphQLRequest{Query: CustomersQuery, OperationName: "Customers", Variables: vars}},
	}
}

// CreateSteps returns the GraphQL create scenario: a customer sign-up, then a
// product. now makes the email, slug and SKU unique.
func CreateSteps(now time.Time) []Step {
	return []Step{
		{
			Name: "Customer Created",
			Request: &ctp.GraphQLRequest{
				Query:         CustomerSignUpMutation,
				OperationName: "SignUp",
				Variables:     map[string]interface{}{"draft": customerSignUpDraft(now)},
			},
		},
		{
			Name: "Product Created",
			Request: &ctp.GraphQLRequest{
				Query:         CreateProductMutation,
				OperationName: "CreateProduct",
				Variables:     map[string]interface{}{"draft": productDraft(now)},
			},
		},
	}
}

// CustomerDraft is the REST sign-up draft of the demo customer.
func CustomerDraft(now time.Time) *ctp.CustomerDraft {
	return &ctp.CustomerDraft{
		Email:     UniqueEmail(now),
		Password:  constants.DemoPassword,
		FirstName: constants.DemoFirstName,
		LastName:  constants.DemoLastName,
	}
}

// ProductDraft is the REST draft of the demo product.
func ProductDraft(now time.Time) *ctp.ProductDraft {
	stamp := now.UnixMilli()

	return &ctp.ProductDraft{
		ProductType: ctp.ResourceIdentifier{TypeID: "product-type", Key: constants.DemoProductTypeKey},
		Name:        ctp.NewLocalizedString("en", fmt.Sprintf("REST Test Product %d", stamp)),
		Slug:        ctp.NewLocalizedString("en", fmt.Sprintf("rest-test-product-%d", stamp)),
		MasterVariant: &ctp.ProductVariantDraft{
			SKU: fmt.Sprintf("rest-sku-%d", stamp),
		},
		Publish: true,
	}
}

// UniqueEmail derives a demo email address from now.
func UniqueEmail(now time.Time) string {
	return fmt.Sprintf("%s%d@example.com", strings.ToLower(constants.DemoFirstName), now.UnixMilli())
}

func customerSignUpDraft(now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"email":     UniqueEmail(now),
		"password":  constants.DemoPassword,
		"firstName": constants.DemoFirstName,
		"lastName":  constants.DemoLastName,
	}
}

// productDraft uses the GraphQL shape, where localized strings are lists of
// locale/value pairs.
func productDraft(now time.Time) map[string]interface{} {
	stamp := now.UnixMilli()

	return map[string]interface{}{
		"productType": map[string]interface{}{"typeId": "product-type", "key": constants.DemoProductTypeKey},
		"name": []map[string]interface{}{
			{"locale": "en", "value": fmt.Sprintf("GraphQL Test Product %d", stamp)},
		},
		"slug": []map[string]interface{}{
			{"locale": "en", "value": fmt.Sprintf("graphql-test-product-%d", stamp)},
		},
		"masterVariant": map[string]interface{}{"sku": fmt.Sprintf("graphql-sku-%d", stamp)},
		"publish":       true,
	}
}
