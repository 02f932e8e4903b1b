package client

import (
	"context"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// OrdersClient implements ctp.OrdersClient.
type OrdersClient struct {
	httpClient *http.Client
	projectKey string
}

// NewOrdersClient creates a new orders client.
func NewOrdersClient(httpClient *http.Client, projectKey string) *OrdersClient {
	return &OrdersClient{
		httpClient: httpClient,
		projectKey: projectKey,
	}
}

// List implements ctp.OrdersClient.List.
func (c *OrdersClient) List(ctx context.Context, params *ctp.QueryParams) (*ctp.OrderList, error) {
	return listResources[ctp.Order](ctx, c.httpClient, c.projectKey, ctp.KindOrder, params)
}

// Get implements ctp.OrdersClient.Get.
func (c *OrdersClient) Get(ctx context.Context, id string) (*ctp.Order, error) {
	return getResource[ctp.Order](ctx, c.httpClient, c.projectKey, ctp.KindOrder, id)
}
