package client

import (
	"context"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// CategoriesClient implements ctp.CategoriesClient.
type CategoriesClient struct {
	httpClient *http.Client
	projectKey string
}

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(httpClient *http.Client, projectKey string) *CategoriesClient {
	return &CategoriesClient{
		httpClient: httpClient,
		projectKey: projectKey,
	}
}

// List implements ctp.CategoriesClient.List.
func (c *CategoriesClient) List(ctx context.Context, params *ctp.QueryParams) (*ctp.CategoryList, error) {
	return listResources[ctp.Category](ctx, c.httpClient, c.projectKey, ctp.KindCategory, params)
}

// Get implements ctp.CategoriesClient.Get.
func (c *CategoriesClient) Get(ctx context.Context, id string) (*ctp.Category, error) {
	return getResource[ctp.Category](ctx, c.httpClient, c.projectKey, ctp.KindCategory, id)
}
