package client

import (
	"context"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// CartsClient implements ctp.CartsClient.
type CartsClient struct {
	httpClient *http.Client
	projectKey string
}

// NewCartsClient creates a new carts client.
func NewCartsClient(httpClient *http.Client, projectKey string) *CartsClient {
	return &CartsClient{
		httpClient: httpClient,
		projectKey: projectKey,
	}
}

// List implements ctp.CartsClient.List.
func (c *CartsClient) List(ctx context.Context, params *ctp.QueryParams) (*ctp.CartList, error) {
	return listResources[ctp.Cart](ctx, c.httpClient, c.projectKey, ctp.KindCart, params)
}

// Get implements ctp.CartsClient.Get.
func (c *CartsClient) Get(ctx context.Context, id string) (*ctp.Cart, error) {
	return getResource[ctp.Cart](ctx, c.httpClient, c.projectKey, ctp.KindCart, id)
}
