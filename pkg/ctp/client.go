package ctp

import (
	"context"
	"fmt"
	"time"
)

// ProductsClient provides access to product resources.
type ProductsClient interface {
	List(ctx context.Context, params *QueryParams) (*ProductList, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, draft *ProductDraft) (*Product, error)
}

// CategoriesClient provides access to category resources.
type CategoriesClient interface {
	List(ctx context.Context, params *QueryParams) (*CategoryList, error)
	Get(ctx context.Context, id string) (*Category, error)
}

// CustomersClient provides access to customer resources.
type CustomersClient interface {
	List(ctx context.Context, params *QueryParams) (*CustomerList, error)
	Get(ctx context.Context, id string) (*Customer, error)
	SignUp(ctx context.Context, draft *CustomerDraft) (*CustomerSignInResult, error)
}

// CartsClient provides access to cart resources.
type CartsClient interface {
	List(ctx context.Context, params *QueryParams) (*CartList, error)
	Get(ctx context.Context, id string) (*Cart, error)
}

// OrdersClient provides access to order resources.
type OrdersClient interface {
	List(ctx context.Context, params *QueryParams) (*OrderList, error)
	Get(ctx context.Context, id string) (*Order, error)
}

// GraphQLClient executes documents against the project GraphQL endpoint.
type GraphQLClient interface {
	Do(ctx context.Context, req *GraphQLRequest) (*GraphQLResponse, error)
	Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Products() ProductsClient
	Categories() CategoriesClient
	Customers() CustomersClient
	Carts() CartsClient
	Orders() OrdersClient
}

// Executor issues single raw requests.
type Executor interface {
	// Execute issues one REST request described by spec.
	Execute(ctx context.Context, spec *RequestSpec) (*RawResponse, error)
	// ExecuteGraphQL posts query to the project GraphQL endpoint. A 2xx
	// response carrying an "errors" array fails with *GraphQLResultError.
	ExecuteGraphQL(ctx context.Context, query string) (*RawResponse, error)
}

// Client is the authenticated handle shared by every call of a run. It is
// safe for concurrent use.
type Client interface {
	ResourceClients
	Executor

	GraphQL() GraphQLClient
	ProjectKey() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a ctp.Client.
//
// # Authentication
//
// The client uses the OAuth2 client_credentials grant against
// "<AuthURL>/oauth/token" with ClientID/ClientSecret sent as HTTP basic auth
// and Scopes joined by spaces. The token is requested lazily on the first API
// call and cached until shortly before it expires.
//
// # Timeouts and retries
//
// RequestTimeout bounds each call, including its retries. Transport failures,
// 429 and 5xx responses are retried with exponential backoff between
// RetryWaitMin and RetryWaitMax, at most RetryMax times. A RetryMax of zero
// selects the default; a negative value disables retries.
type Config struct {
	// AuthURL: base URL of the authorization server, e.g.
	// "https://auth.europe-west1.gcp.commercetools.com".
	AuthURL string
	// APIURL: base URL of the HTTP API, e.g.
	// "https://api.europe-west1.gcp.commercetools.com".
	APIURL string
	// ProjectKey: the project every request is scoped to.
	ProjectKey string
	// ClientID: API client id.
	ClientID string
	// ClientSecret: API client secret. Never logged.
	ClientSecret string
	// Scopes: OAuth2 scopes, e.g. "manage_project:<projectKey>".
	Scopes []string

	// Optional configurations
	// RequestTimeout: deadline applied to every call. Zero selects the default.
	RequestTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Headers: extra headers sent with every API request.
	Headers map[string]string
}

// String implements fmt.Stringer without exposing the client secret.
func (c *Config) String() string {
	secret := ""
	if c.ClientSecret != "" {
		secret = "***"
	}

	return fmt.Sprintf("Config{AuthURL: %q, APIURL: %q, ProjectKey: %q, ClientID: %q, ClientSecret: %q, Scopes: %v}",
		c.AuthURL, c.APIURL, c.ProjectKey, c.ClientID, secret, c.Scopes)
}
