package client

import (
	"context"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// ProductsClient implements ctp.ProductsClient.
type ProductsClient struct {
	httpClient *http.Client
	projectKey string
}

// NewProductsClient creates a new products client.
func NewProductsClient(httpClient *http.Client, projectKey string) *ProductsClient {
	return &ProductsClient{
		httpClient: httpClient,
		projectKey: projectKey,
	}
}

// List implements ctp.ProductsClient.List.
func (c *ProductsClient) List(ctx context.Context, params *ctp.QueryParams) (*ctp.ProductList, error) {
	return listResources[ctp.Product](ctx, c.httpClient, c.projectKey, ctp.KindProduct, params)
}

// Get implements ctp.ProductsClient.Get.
func (c *ProductsClient) Get(ctx context.Context, id string) (*ctp.Product, error) {
	return getResource[ctp.Product](ctx, c.httpClient, c.projectKey, ctp.KindProduct, id)
}

// Create implements ctp.ProductsClient.Create.
func (c *ProductsClient) Create(ctx context.Context, draft *ctp.ProductDraft) (*ctp.Product, error) {
	return createResource[ctp.Product](ctx, c.httpClient, c.projectKey, ctp.KindProduct, draft)
}
