package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/ctp/internal/config"
)

const productPageOne = `{"limit":2,"offset":0,"count":2,"total":3,"results":[
	{"id":"p-1","masterData":{"published":true,"current":{"name":{"en":"Pillow"},"slug":{"en":"pillow"},"masterVariant":{"id":1},"variants":[]}}},
	{"id":"p-2","masterData":{"published":false,"current":{"name":{"de":"Decke"},"slug":{"de":"decke"},"masterVariant":{"id":1},"variants":[{"id":2}]}}}]}`

const productPageTwo = `{"limit":2,"offset":2,"count":1,"total":3,"results":[
	{"id":"p-3","masterData":{"published":true,"current":{"name":{"en":"Sheet"},"slug":{"en":"sheet"},"masterVariant":{"id":1},"variants":[]}}}]}`

const createdProduct = `{"id":"p-rest","version":1,"masterData":{"published":true,"current":{
	"name":{"en":"REST Test Product 1"},"slug":{"en":"rest-test-product-1"},"masterVariant":{"id":1,"sku":"rest-sku-1"},"variants":[]}}}`

// newProjectServer serves a token endpoint and a small "demo" project.
func newProjectServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/demo/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(createdProduct))

			return
		}

		if r.URL.Query().Get("offset") == "2" {
			_, _ = w.Write([]byte(productPageTwo))

			return
		}

		_, _ = w.Write([]byte(productPageOne))
	})
	mux.HandleFunc("/demo/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"limit":2,"offset":0,"count":1,"total":1,"results":[{"id":"cat-1","name":{"en":"Bedding"},"slug":{"en":"bedding"}}]}`))
	})
	mux.HandleFunc("/demo/categories/cat-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"cat-1","key":"bedding","name":{"en":"Bedding"},"slug":{"en":"bedding"}}`))
	})
	mux.HandleFunc("/demo/customers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var draft struct {
				Email string `json:"email"`
			}
			_ = json.NewDecoder(r.Body).Decode(&draft)

			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprintf(w, `{"customer":{"id":"cust-rest","email":%q,"firstName":"Dinesh","lastName":"Kumar"}}`, draft.Email)

			return
		}

		_, _ = w.Write([]byte(`{"limit":2,"offset":0,"count":1,"total":1,"results":[{"id":"cust-1","email":"d@example.com","firstName":"Dinesh","lastName":"Kumar"}]}`))
	})
	mux.HandleFunc("/demo/carts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"limit":2,"offset":0,"count":1,"total":1,"results":[{"id":"cart-1","cartState":"Active","lineItems":[{"id":"li-1","quantity":3}],"totalPrice":{"currencyCode":"EUR","centAmount":1050}}]}`))
	})
	mux.HandleFunc("/demo/orders", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"limit":2,"offset":0,"count":0,"total":0,"results":[]}`))
	})
	mux.HandleFunc("/demo/graphql", func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		_, _ = body.ReadFrom(r.Body)

		switch {
		case strings.Contains(body.String(), "nope"):
			_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Field 'nope' is not defined","locations":[{"line":1,"column":3}],"extensions":{"code":"ValidationError"}}]}`))
		case strings.Contains(body.String(), "customerSignUp"):
			_, _ = w.Write([]byte(`{"data":{"customerSignUp":{"customer":{"id":"cust-new","email":"dinesh1@example.com"}}}}`))
		case strings.Contains(body.String(), "createProduct"):
			_, _ = w.Write([]byte(`{"data":{"createProduct":{"id":"p-new"}}}`))
		default:
			_, _ = w.Write([]byte(`{"data":{"products":{"total":3}}}`))
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// configureProject points the global viper at server and resets it when the
// test ends.
func configureProject(t *testing.T, serverURL string) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(config.KeyAuthURL, serverURL)
	viper.Set(config.KeyAPIURL, serverURL)
	viper.Set(config.KeyProjectKey, "demo")
	viper.Set(config.KeyClientID, "client-id")
	viper.Set(config.KeyClientSecret, "client-secret")
	viper.Set(config.KeyScopes, "manage_project:demo")
	viper.Set(config.KeyRetryMax, "-1")
}

// configureValue overrides one viper key for the rest of the test.
func configureValue(t *testing.T, key string, value interface{}) {
	t.Helper()

	viper.Set(key, value)
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	rootCmd := NewRootCommand("1.2.3", "abc123", "2026-01-01")
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
