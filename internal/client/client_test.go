package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

const testProjectKey = "demo"

// staticTokenManager hands out a fixed token.
type staticTokenManager struct {
	refreshes atomic.Int64
}

func (m *staticTokenManager) GetToken(context.Context) (string, error) {
	return "test-token", nil
}

func (m *staticTokenManager) RefreshToken(context.Context) error {
	m.refreshes.Add(1)

	return nil
}

// newTestClient builds a client against baseURL with retries disabled.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := NewWithTokenManager(&ctp.Config{
		APIURL:     baseURL,
		ProjectKey: testProjectKey,
		RetryMax:   -1,
	}, &staticTokenManager{})
	require.NoError(t, err)

	return client
}

const productsPage = `{
	"limit": 2, "offset": 0, "count": 2, "total": 7,
	"results": [
		{"id": "p-1", "version": 1, "masterData": {"published": true, "current": {
			"name": {"en": "Pillow"}, "slug": {"en": "pillow"},
			"masterVariant": {"id": 1}, "variants": []}}},
		{"id": "p-2", "version": 1, "masterData": {"published": false, "current": {
			"name": {"de": "Decke"}, "slug": {"de": "decke"},
			"masterVariant": {"id": 1}, "variants": [{"id": 2}, {"id": 3}]}}}
	]
}`

//nolint:funlen
func TestClient_New(t *testing.T) {
	t.Parallel()

	t.Run("no network I/O at build", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		client, err := New(&ctp.Config{
			AuthURL:      server.URL,
			APIURL:       server.URL,
			ProjectKey:   testProjectKey,
			ClientID:     "id",
			ClientSecret: "secret",
			Scopes:       []string{"manage_project:demo"},
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, testProjectKey, client.ProjectKey())
		assert.Equal(t, int64(0), calls.Load())
	})

	tests := []struct {
		name   string
		config *ctp.Config
		field  string
	}{
		{name: "nil config", config: nil},
		{name: "missing auth url", config: &ctp.Config{APIURL: "https://api", ProjectKey: "p", ClientID: "i", ClientSecret: "s"}, field: "AuthURL"},
		{name: "missing credentials", config: &ctp.Config{AuthURL: "https://auth", APIURL: "https://api", ProjectKey: "p"}, field: "ClientID"},
		{name: "missing api url", config: &ctp.Config{AuthURL: "https://auth", ProjectKey: "p", ClientID: "i", ClientSecret: "s"}, field: "APIURL"},
		{name: "missing project key", config: &ctp.Config{AuthURL: "https://auth", APIURL: "https://api", ClientID: "i", ClientSecret: "s"}, field: "ProjectKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := New(tt.config)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Equal(t, ctp.ErrorKindBuild, ctp.Classify(err))

			var buildErr *ctp.BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, tt.field, buildErr.Field)
		})
	}
}

func TestClient_TokenFetchedOnceAndReused(t *testing.T) {
	t.Parallel()

	var tokenCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","expires_in":172800}`))
	})
	mux.HandleFunc("/demo/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(ctp.CorrelationIDHeader))
		assert.Equal(t, "true", r.Header.Get("X-Demo"))
		_, _ = w.Write([]byte(productsPage))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(&ctp.Config{
		AuthURL:      server.URL,
		APIURL:       server.URL,
		ProjectKey:   testProjectKey,
		ClientID:     "id",
		ClientSecret: "secret",
		Scopes:       []string{"manage_project:demo"},
		Headers:      map[string]string{"X-Demo": "true"},
	})
	require.NoError(t, err)

	for range 3 {
		_, err = client.Products().List(context.Background(), ctp.NewQueryParams().WithLimit(2))
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), tokenCalls.Load())

	metrics := client.Metrics().GetMetrics("GET /demo/products")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(3), metrics.TotalRequests)
	assert.Equal(t, int64(0), metrics.TotalErrors)
}

func TestClient_TokenEndpointUnavailable(t *testing.T) {
	t.Parallel()

	var tokenCalls, apiCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"statusCode":503,"message":"Auth service unavailable"}`))
	})
	mux.HandleFunc("/demo/products", func(w http.ResponseWriter, r *http.Request) {
		apiCalls.Add(1)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := New(&ctp.Config{
		AuthURL:      server.URL,
		APIURL:       server.URL,
		ProjectKey:   testProjectKey,
		ClientID:     "id",
		ClientSecret: "secret",
		Scopes:       []string{"manage_project:demo"},
		RetryMax:     1,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.Products().List(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, ctp.ErrorKindAPI, ctp.Classify(err))

	apiErr := &ctp.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "/oauth/token", apiErr.Path)
	assert.Equal(t, int64(2), tokenCalls.Load())
	assert.Zero(t, apiCalls.Load())
}

func TestClient_ListProductsAndNormalize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/products", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "limit=2&offset=0", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsPage))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	raw, err := client.Execute(context.Background(), &ctp.RequestSpec{
		Kind:       ctp.KindProduct,
		Pagination: &ctp.Pagination{Limit: 2, Offset: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, raw.StatusCode)

	page, err := ctp.Normalize(ctp.KindProduct, raw.Body)
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Records, 2)

	first, ok := page.Records[0].(ctp.ProductRecord)
	require.True(t, ok)
	assert.Equal(t, "p-1", first.ID)
	assert.Equal(t, "Pillow", first.Name)
	assert.Equal(t, 1, first.VariantCount)

	second, ok := page.Records[1].(ctp.ProductRecord)
	require.True(t, ok)
	assert.Equal(t, "p-2", second.ID)
	assert.Equal(t, 3, second.VariantCount)

	list, err := client.Products().List(context.Background(), ctp.NewQueryParams().WithLimit(2))
	require.NoError(t, err)
	assert.Equal(t, 7, list.TotalOrCount())
	require.Len(t, list.Results, 2)
	assert.Equal(t, "p-1", list.Results[0].ID)
}

func TestClient_Execute(t *testing.T) {
	t.Parallel()

	t.Run("POST when body is set", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/demo/customers", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var draft ctp.CustomerDraft
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			assert.Equal(t, "a@example.com", draft.Email)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"customer":{"id":"c-1","email":"a@example.com"}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.Execute(context.Background(), &ctp.RequestSpec{
			Kind: ctp.KindCustomer,
			Body: &ctp.CustomerDraft{Email: "a@example.com", Password: "pw"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, raw.StatusCode)
	})

	t.Run("GET by id", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/demo/orders/o-1", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":"o-1"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.Execute(context.Background(), &ctp.RequestSpec{Kind: ctp.KindOrder, ID: "o-1"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"o-1"}`, string(raw.Body))
	})

	t.Run("404 is an API error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"statusCode":404,"message":"The Resource with ID 'x' was not found.","errors":[{"code":"ResourceNotFound","message":"The Resource with ID 'x' was not found."}]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.Execute(context.Background(), &ctp.RequestSpec{Kind: ctp.KindCart, ID: "x"})
		require.Error(t, err)
		assert.Nil(t, raw)
		assert.True(t, ctp.IsNotFound(err))
		assert.Equal(t, ctp.ErrorKindAPI, ctp.Classify(err))
	})

	t.Run("rejects nil spec and unknown kind", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, "http://127.0.0.1:1")

		_, err := client.Execute(context.Background(), nil)
		require.ErrorIs(t, err, ErrRequestSpecRequired)

		_, err = client.Execute(context.Background(), &ctp.RequestSpec{Kind: "widget"})
		require.ErrorIs(t, err, ctp.ErrUnknownResourceKind)
	})
}

//nolint:funlen
func TestClient_ExecuteGraphQL(t *testing.T) {
	t.Parallel()

	t.Run("data only", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/demo/graphql", r.URL.Path)

			var req ctp.GraphQLRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "{ products { total } }", req.Query)

			_, _ = w.Write([]byte(`{"data":{"products":{"total":3}}}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.ExecuteGraphQL(context.Background(), "{ products { total } }")
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"products":{"total":3}}}`, string(raw.Body))
	})

	t.Run("200 with errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Field 'nope' is not defined","locations":[{"line":1,"column":3}]}]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.ExecuteGraphQL(context.Background(), "{ nope }")
		require.Error(t, err)
		require.NotNil(t, raw)
		assert.Equal(t, http.StatusOK, raw.StatusCode)
		assert.Equal(t, ctp.ErrorKindGraphQL, ctp.Classify(err))

		gqlErrs, ok := ctp.GraphQLErrors(err)
		require.True(t, ok)
		require.Len(t, gqlErrs, 1)
		assert.Equal(t, "Field 'nope' is not defined", gqlErrs[0].Message)
		assert.Equal(t, []ctp.ErrorLocation{{Line: 1, Column: 3}}, gqlErrs[0].Locations)
	})

	t.Run("400 with graphql errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"statusCode":400,"message":"Syntax Error","errors":[{"code":"GraphQLError","message":"Syntax Error"}]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.ExecuteGraphQL(context.Background(), "{")
		require.Error(t, err)
		require.NotNil(t, raw)
		assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
		assert.Equal(t, ctp.ErrorKindAPI, ctp.Classify(err))

		gqlErrs, ok := ctp.GraphQLErrors(err)
		require.True(t, ok)
		assert.Equal(t, "Syntax Error", gqlErrs[0].Message)
	})

	t.Run("undecodable body is a normalization error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>gateway</html>`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		raw, err := client.ExecuteGraphQL(context.Background(), "{ products { total } }")
		require.Error(t, err)
		require.NotNil(t, raw)
		assert.Equal(t, ctp.ErrorKindNormalization, ctp.Classify(err))

		_, err = client.GraphQL().Do(context.Background(), &ctp.GraphQLRequest{Query: "{ products { total } }"})
		assert.Equal(t, ctp.ErrorKindNormalization, ctp.Classify(err))
	})

	t.Run("empty query is rejected locally", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, "http://127.0.0.1:1")

		raw, err := client.ExecuteGraphQL(context.Background(), "  \n ")
		require.ErrorIs(t, err, ctp.ErrEmptyQuery)
		assert.Nil(t, raw)
	})
}

func TestGraphQLClient_Query(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ctp.GraphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Variables["empty"] == true {
			_, _ = w.Write([]byte(`{"data":null}`))

			return
		}

		assert.InDelta(t, 2, req.Variables["limit"], 0)
		_, _ = w.Write([]byte(`{"data":{"products":{"results":[{"id":"p-1"},{"id":"p-2"}]}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var out struct {
		Products struct {
			Results []struct {
				ID string `json:"id"`
			} `json:"results"`
		} `json:"products"`
	}

	err := client.GraphQL().Query(context.Background(), "query($limit: Int) { products(limit: $limit) { results { id } } }",
		map[string]interface{}{"limit": 2}, &out)
	require.NoError(t, err)
	require.Len(t, out.Products.Results, 2)
	assert.Equal(t, "p-2", out.Products.Results[1].ID)

	err = client.GraphQL().Query(context.Background(), "{ products { total } }", map[string]interface{}{"empty": true}, &out)
	require.ErrorIs(t, err, ErrGraphQLNoData)
}

//nolint:funlen
func TestResourceClients(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/demo/categories":
			_, _ = w.Write([]byte(`{"limit":20,"offset":0,"count":1,"results":[{"id":"cat-1","name":{"en":"Bedding"},"slug":{"en":"bedding"},"ancestors":[]}]}`))
		case "/demo/customers/cust-1":
			_, _ = w.Write([]byte(`{"id":"cust-1","email":"d@example.com","firstName":"Dinesh"}`))
		case "/demo/customers":
			assert.Equal(t, http.MethodPost, r.Method)

			var draft ctp.CustomerDraft
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			assert.Equal(t, "new@example.com", draft.Email)
			assert.Equal(t, "Test@1234", draft.Password)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"customer":{"id":"cust-new","version":1,"email":"new@example.com","firstName":"Dinesh","lastName":"Kumar"}}`))
		case "/demo/orders":
			_, _ = w.Write([]byte(`<html>gateway</html>`))
		case "/demo/carts":
			assert.Equal(t, "lastModifiedAt desc", r.URL.Query().Get("sort"))
			_, _ = w.Write([]byte(`{"limit":20,"offset":0,"count":1,"results":[{"id":"cart-1","cartState":"Active","lineItems":[{"id":"li","quantity":2}]}]}`))
		case "/demo/orders/o-1":
			_, _ = w.Write([]byte(`{"id":"o-1","orderState":"Open","lineItems":[]}`))
		case "/demo/products":
			assert.Equal(t, http.MethodPost, r.Method)

			var draft ctp.ProductDraft
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			assert.Equal(t, "bedding-bundle", draft.ProductType.Key)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"p-new","version":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	categories, err := client.Categories().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, categories.Results, 1)
	assert.Equal(t, "cat-1", categories.Results[0].ID)

	customer, err := client.Customers().Get(ctx, "cust-1")
	require.NoError(t, err)
	assert.Equal(t, "d@example.com", customer.Email)

	carts, err := client.Carts().List(ctx, ctp.NewQueryParams().WithSort("lastModifiedAt desc"))
	require.NoError(t, err)
	assert.Equal(t, 2, ctp.TotalQuantity(carts.Results[0].LineItems))

	order, err := client.Orders().Get(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "Open", order.OrderState)
	assert.NotNil(t, order.LineItems)

	product, err := client.Products().Create(ctx, &ctp.ProductDraft{
		ProductType: ctp.ResourceIdentifier{TypeID: "product-type", Key: "bedding-bundle"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p-new", product.ID)

	signIn, err := client.Customers().SignUp(ctx, &ctp.CustomerDraft{
		Email:     "new@example.com",
		Password:  "Test@1234",
		FirstName: "Dinesh",
		LastName:  "Kumar",
	})
	require.NoError(t, err)
	assert.Equal(t, "cust-new", signIn.Customer.ID)
	assert.Equal(t, "new@example.com", signIn.Customer.Email)
	assert.Nil(t, signIn.Cart)

	_, err = client.Orders().List(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, ctp.ErrorKindNormalization, ctp.Classify(err))

	normErr := &ctp.NormalizationError{}
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, ctp.KindOrder, normErr.Kind)
	assert.Equal(t, "body", normErr.Field)

	_, err = client.Orders().Get(ctx, "")
	require.ErrorIs(t, err, ctp.ErrIDRequired)

	_, err = client.Carts().Get(ctx, "missing")
	require.Error(t, err)

	apiErr := &ctp.APIError{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "/demo/carts/missing", apiErr.Path)
}
