// Package ctpclient provides the main entry point for creating commercetools API clients
package ctpclient

import (
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ctp/internal/client"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// New creates a new commercetools API client. URLs are normalized, then the
// client is assembled without contacting either endpoint.
func New(config *ctp.Config) (ctp.Client, error) {
	if config == nil {
		return nil, &ctp.BuildError{Err: ctp.ErrConfigRequired}
	}

	normalized := *config

	authURL, err := normalizeURL("AuthURL", config.AuthURL, ctp.ErrAuthURLRequired)
	if err != nil {
		return nil, err
	}

	apiURL, err := normalizeURL("APIURL", config.APIURL, ctp.ErrAPIURLRequired)
	if err != nil {
		return nil, err
	}

	normalized.AuthURL = authURL
	normalized.APIURL = apiURL
	normalized.ProjectKey = strings.TrimSpace(config.ProjectKey)

	if normalized.ProjectKey == "" {
		return nil, &ctp.BuildError{Field: "ProjectKey", Err: ctp.ErrProjectKeyRequired}
	}

	normalized.Scopes = append([]string(nil), config.Scopes...)
	normalized.Headers = maps.Clone(config.Headers)

	return client.New(&normalized)
}

// NewWithClientCredentials creates a client for projectKey with the given
// credentials and the "manage_project:<projectKey>" scope.
func NewWithClientCredentials(authURL, apiURL, projectKey, clientID, clientSecret string) (ctp.Client, error) {
	return New(&ctp.Config{
		AuthURL:      authURL,
		APIURL:       apiURL,
		ProjectKey:   projectKey,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"manage_project:" + projectKey},
	})
}

// normalizeURL trims trailing slashes and defaults the scheme to https.
func normalizeURL(field, raw string, missing error) (string, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(raw), "/")
	if endpoint == "" {
		return "", &ctp.BuildError{Field: field, Err: missing}
	}

	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", &ctp.BuildError{Field: field, Err: fmt.Errorf("parsing %q: %w", raw, err)}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &ctp.BuildError{Field: field, Err: fmt.Errorf("%w: %q", ctp.ErrUnsupportedScheme, parsed.Scheme)}
	}

	if parsed.Host == "" {
		return "", &ctp.BuildError{Field: field, Err: ctp.ErrNoHostInURL}
	}

	return endpoint, nil
}
