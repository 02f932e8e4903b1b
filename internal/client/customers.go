package client

import (
	"context"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// CustomersClient implements ctp.CustomersClient.
type CustomersClient struct {
	httpClient *http.Client
	projectKey string
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(httpClient *http.Client, projectKey string) *CustomersClient {
	return &CustomersClient{
		httpClient: httpClient,
		projectKey: projectKey,
	}
}

// List implements ctp.CustomersClient.List.
func (c *CustomersClient) List(ctx context.Context, params *ctp.QueryParams) (*ctp.CustomerList, error) {
	return listResources[ctp.Customer](ctx, c.httpClient, c.projectKey, ctp.KindCustomer, params)
}

// Get implements ctp.CustomersClient.Get.
func (c *CustomersClient) Get(ctx context.Context, id string) (*ctp.Customer, error) {
	return getResource[ctp.Customer](ctx, c.httpClient, c.projectKey, ctp.KindCustomer, id)
}

// SignUp implements ctp.CustomersClient.SignUp. The API answers with the
// customer wrapped in a sign-in result.
func (c *CustomersClient) SignUp(ctx context.Context, draft *ctp.CustomerDraft) (*ctp.CustomerSignInResult, error) {
	return createResource[ctp.CustomerSignInResult](ctx, c.httpClient, c.projectKey, ctp.KindCustomer, draft)
}
