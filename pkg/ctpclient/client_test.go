package ctpclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ctp/pkg/ctp"
	"github.com/fivetwenty-io/ctp/pkg/ctpclient"
)

func validConfig() *ctp.Config {
	return &ctp.Config{
		AuthURL:      "https://auth.example.com",
		APIURL:       "https://api.example.com",
		ProjectKey:   "demo",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       []string{"manage_project:demo"},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := ctpclient.New(validConfig())
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.Equal(t, "demo", client.ProjectKey())
	})

	t.Run("does not modify the caller's config", func(t *testing.T) {
		t.Parallel()

		config := validConfig()
		config.APIURL = "api.example.com/"

		_, err := ctpclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "api.example.com/", config.APIURL)
	})

	t.Run("performs no network I/O", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer server.Close()

		config := validConfig()
		config.AuthURL = server.URL
		config.APIURL = server.URL + "/"

		_, err := ctpclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, int64(0), calls.Load())
	})
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*ctp.Config)
		field  string
		target error
	}{
		{name: "empty auth url", mutate: func(c *ctp.Config) { c.AuthURL = "" }, field: "AuthURL", target: ctp.ErrAuthURLRequired},
		{name: "empty api url", mutate: func(c *ctp.Config) { c.APIURL = " " }, field: "APIURL", target: ctp.ErrAPIURLRequired},
		{name: "unsupported scheme", mutate: func(c *ctp.Config) { c.APIURL = "ftp://api.example.com" }, field: "APIURL", target: ctp.ErrUnsupportedScheme},
		{name: "no host", mutate: func(c *ctp.Config) { c.AuthURL = "https:///oauth" }, field: "AuthURL", target: ctp.ErrNoHostInURL},
		{name: "empty project key", mutate: func(c *ctp.Config) { c.ProjectKey = "" }, field: "ProjectKey", target: ctp.ErrProjectKeyRequired},
		{name: "missing credentials", mutate: func(c *ctp.Config) { c.ClientSecret = "" }, field: "ClientID", target: ctp.ErrCredentialsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := validConfig()
			tt.mutate(config)

			client, err := ctpclient.New(config)
			require.Error(t, err)
			assert.Nil(t, client)
			require.ErrorIs(t, err, tt.target)
			assert.Equal(t, ctp.ErrorKindBuild, ctp.Classify(err))

			var buildErr *ctp.BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, tt.field, buildErr.Field)
		})
	}

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := ctpclient.New(nil)
		require.ErrorIs(t, err, ctp.ErrConfigRequired)
	})
}

func TestNewWithClientCredentials(t *testing.T) {
	t.Parallel()

	var scope atomic.Value

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		scope.Store(r.PostForm.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/demo/categories", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"limit":20,"offset":0,"count":0,"results":[]}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := ctpclient.NewWithClientCredentials(server.URL+"/", server.URL, "demo", "id", "secret")
	require.NoError(t, err)

	list, err := client.Categories().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list.Results)
	assert.Equal(t, "manage_project:demo", scope.Load())
}
