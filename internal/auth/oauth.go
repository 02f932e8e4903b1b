package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/fivetwenty-io/ctp/pkg/ctp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenPath is appended to the auth URL to form the token endpoint.
const TokenPath = "/oauth/token"

// ClientCredentialsConfig configures a ClientCredentialsManager.
type ClientCredentialsConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// HTTPClient is used for token requests. Nil selects http.DefaultClient.
	HTTPClient *http.Client
}

// ClientCredentialsManager obtains tokens with the OAuth2 client_credentials
// grant. Tokens are fetched lazily and shared by all callers; concurrent
// callers wait for a single fetch.
type ClientCredentialsManager struct {
	config     clientcredentials.Config
	httpClient *http.Client
	store      *TokenStore
	fetchMu    sync.Mutex
	fetches    atomic.Int64
}

// NewClientCredentialsManager creates a manager. It performs no network I/O.
func NewClientCredentialsManager(config *ClientCredentialsConfig) *ClientCredentialsManager {
	return &ClientCredentialsManager{
		config: clientcredentials.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenURL:     config.TokenURL,
			Scopes:       config.Scopes,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: config.HTTPClient,
		store:      NewTokenStore(),
	}
}

// GetToken returns a valid access token, fetching one if necessary.
func (m *ClientCredentialsManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	m.fetchMu.Lock()
	defer m.fetchMu.Unlock()

	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.fetch(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken discards the cached token and fetches a new one.
func (m *ClientCredentialsManager) RefreshToken(ctx context.Context) error {
	m.fetchMu.Lock()
	defer m.fetchMu.Unlock()

	m.store.Clear()

	token, err := m.fetch(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// Fetches returns how many token requests have been issued.
func (m *ClientCredentialsManager) Fetches() int64 {
	return m.fetches.Load()
}

func (m *ClientCredentialsManager) fetch(ctx context.Context) (*Token, error) {
	m.fetches.Add(1)

	if m.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)
	}

	tok, err := m.config.Token(ctx)
	if err != nil {
		return nil, m.classify(err)
	}

	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    tok.ExpiresIn,
		ExpiresAt:    tok.Expiry,
	}, nil
}

// classify maps token endpoint failures onto the client error taxonomy.
func (m *ClientCredentialsManager) classify(err error) error {
	path := m.config.TokenURL
	if parsed, parseErr := url.Parse(m.config.TokenURL); parseErr == nil {
		path = parsed.Path
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		apiErr := ctp.ParseAPIError(retrieveErr.Response.StatusCode, retrieveErr.Body)
		apiErr.Method = http.MethodPost
		apiErr.Path = path

		return fmt.Errorf("fetching access token: %w", apiErr)
	}

	return &ctp.TransportError{Method: http.MethodPost, Path: path, Err: fmt.Errorf("fetching access token: %w", err)}
}
