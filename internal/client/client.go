package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/ctp/internal/auth"
	"github.com/fivetwenty-io/ctp/internal/constants"
	internalhttp "github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
	"github.com/hashicorp/go-retryablehttp"
)

// Static errors for err113 compliance.
var (
	ErrRequestSpecRequired = errors.New("request spec is required")
	ErrGraphQLNoData       = errors.New("graphql response carried no data")
)

// Client implements the ctp.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	projectKey string
	metrics    *ctp.MetricsCollector

	// Resource clients
	products   ctp.ProductsClient
	categories ctp.CategoriesClient
	customers  ctp.CustomersClient
	carts      ctp.CartsClient
	orders     ctp.OrdersClient
	graphql    *GraphQLClient
}

// New creates a client from a normalized configuration. No network I/O is
// performed; the first token is requested by the first call.
func New(config *ctp.Config) (*Client, error) {
	if config == nil {
		return nil, &ctp.BuildError{Err: ctp.ErrConfigRequired}
	}

	if config.AuthURL == "" {
		return nil, &ctp.BuildError{Field: "AuthURL", Err: ctp.ErrAuthURLRequired}
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, &ctp.BuildError{Field: "ClientID", Err: ctp.ErrCredentialsRequired}
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a client with a custom token manager. A nil
// token manager sends unauthenticated requests.
func NewWithTokenManager(config *ctp.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, &ctp.BuildError{Err: ctp.ErrConfigRequired}
	}

	if config.APIURL == "" {
		return nil, &ctp.BuildError{Field: "APIURL", Err: ctp.ErrAPIURLRequired}
	}

	if config.ProjectKey == "" {
		return nil, &ctp.BuildError{Field: "ProjectKey", Err: ctp.ErrProjectKeyRequired}
	}

	metrics := ctp.NewMetricsCollector()
	httpOpts := createHTTPClientOptions(config, metrics)

	client := &Client{
		httpClient: internalhttp.NewClient(config.APIURL, tokenManager, httpOpts...),
		projectKey: config.ProjectKey,
		metrics:    metrics,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenManager builds the client credentials flow against the auth URL.
func createTokenManager(config *ctp.Config) auth.TokenManager {
	retryMax, waitMin, waitMax := retrySettings(config)

	tokenHTTP := retryablehttp.NewClient()
	tokenHTTP.Logger = nil
	tokenHTTP.RetryMax = retryMax
	tokenHTTP.RetryWaitMin = waitMin
	tokenHTTP.RetryWaitMax = waitMax
	tokenHTTP.ErrorHandler = retryablehttp.PassthroughErrorHandler
	tokenHTTP.HTTPClient.Timeout = constants.ShortHTTPTimeout

	return auth.NewClientCredentialsManager(&auth.ClientCredentialsConfig{
		TokenURL:     strings.TrimRight(config.AuthURL, "/") + auth.TokenPath,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       config.Scopes,
		HTTPClient:   &http.Client{Transport: &passthroughTransport{client: tokenHTTP}},
	})
}

// passthroughTransport runs requests through a retrying client. When retries
// are exhausted the last response is returned without an error, so the token
// endpoint's status reaches the caller as an API error like any other call.
// retryablehttp's own StandardClient returns both, and net/http then drops the
// response.
type passthroughTransport struct {
	client *retryablehttp.Client
}

func (t *passthroughTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("wrapping token request: %w", err)
	}

	resp, err := t.client.Do(retryReq)
	if resp != nil {
		return resp, nil
	}

	return nil, err
}

// retrySettings resolves the retry budget. A RetryMax of zero selects the
// default and a negative value disables retries.
func retrySettings(config *ctp.Config) (int, time.Duration, time.Duration) {
	retryMax := config.RetryMax

	switch {
	case retryMax == 0:
		retryMax = constants.LowRetryMax
	case retryMax < 0:
		retryMax = 0
	}

	waitMin := constants.DefaultRetryWaitMin
	if config.RetryWaitMin > 0 {
		waitMin = config.RetryWaitMin
	}

	waitMax := constants.DefaultRetryWaitMax
	if config.RetryWaitMax > 0 {
		waitMax = config.RetryWaitMax
	}

	if waitMax < waitMin {
		waitMax = waitMin
	}

	return retryMax, waitMin, waitMax
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *ctp.Config, metrics *ctp.MetricsCollector) []internalhttp.Option {
	retryMax, waitMin, waitMax := retrySettings(config)

	timeout := constants.DefaultHTTPTimeout
	if config.RequestTimeout > 0 {
		timeout = config.RequestTimeout
	}

	httpOpts := []internalhttp.Option{
		internalhttp.WithRetryConfig(retryMax, waitMin, waitMax),
		internalhttp.WithTimeout(timeout),
		internalhttp.WithInterceptors(createInterceptors(config, metrics)),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	return httpOpts
}

// createInterceptors composes the request pipeline. The logging stage is
// only installed when a logger is configured.
func createInterceptors(config *ctp.Config, metrics *ctp.MetricsCollector) *ctp.InterceptorChain {
	chain := ctp.NewInterceptorChain()
	chain.AddRequestInterceptor(ctp.CorrelationIDInterceptor())

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(ctp.HeaderInterceptor(config.Headers))
	}

	chain.AddRequestInterceptor(ctp.MetricsRequestInterceptor())
	chain.AddResponseInterceptor(ctp.MetricsResponseInterceptor(metrics))

	if config.Logger != nil {
		chain.AddRequestInterceptor(ctp.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(ctp.LoggingResponseInterceptor(config.Logger))
	}

	return chain
}

func (c *Client) initializeResourceClients() {
	c.products = NewProductsClient(c.httpClient, c.projectKey)
	c.categories = NewCategoriesClient(c.httpClient, c.projectKey)
	c.customers = NewCustomersClient(c.httpClient, c.projectKey)
	c.carts = NewCartsClient(c.httpClient, c.projectKey)
	c.orders = NewOrdersClient(c.httpClient, c.projectKey)
	c.graphql = NewGraphQLClient(c.httpClient, c.projectKey)
}

// Execute implements ctp.Executor.Execute.
func (c *Client) Execute(ctx context.Context, spec *ctp.RequestSpec) (*ctp.RawResponse, error) {
	if spec == nil {
		return nil, ErrRequestSpecRequired
	}

	path, err := spec.Path(c.projectKey)
	if err != nil {
		return nil, err
	}

	req := &internalhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  spec.Query(),
	}

	if spec.Body != nil {
		req.Method = http.MethodPost
		req.Body = spec.Body
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", req.Method, path, err)
	}

	return &ctp.RawResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

// ExecuteGraphQL implements ctp.Executor.ExecuteGraphQL. When the server
// answered, the raw response is returned even alongside an error.
func (c *Client) ExecuteGraphQL(ctx context.Context, query string) (*ctp.RawResponse, error) {
	return c.graphql.execute(ctx, &ctp.GraphQLRequest{Query: query})
}

// GraphQL implements ctp.Client.GraphQL.
func (c *Client) GraphQL() ctp.GraphQLClient {
	return c.graphql
}

// ProjectKey implements ctp.Client.ProjectKey.
func (c *Client) ProjectKey() string {
	return c.projectKey
}

// Metrics returns per-endpoint call statistics.
func (c *Client) Metrics() *ctp.MetricsCollector {
	return c.metrics
}

// Resource client accessors

// Products implements ctp.Client.Products.
func (c *Client) Products() ctp.ProductsClient {
	return c.products
}

// Categories implements ctp.Client.Categories.
func (c *Client) Categories() ctp.CategoriesClient {
	return c.categories
}

// Customers implements ctp.Client.Customers.
func (c *Client) Customers() ctp.CustomersClient {
	return c.customers
}

// Carts implements ctp.Client.Carts.
func (c *Client) Carts() ctp.CartsClient {
	return c.carts
}

// Orders implements ctp.Client.Orders.
func (c *Client) Orders() ctp.OrdersClient {
	return c.orders
}

var _ ctp.Client = (*Client)(nil)
