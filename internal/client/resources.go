package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// resourcePath returns "/{projectKey}/{plural}[/{id}]".
func resourcePath(projectKey string, kind ctp.ResourceKind, id string) string {
	path := "/" + url.PathEscape(projectKey) + "/" + kind.Plural()
	if id != "" {
		path += "/" + url.PathEscape(id)
	}

	return path
}

// decodeBody unmarshals a successful response. A body that does not decode
// is reported as a *ctp.NormalizationError.
func decodeBody(kind ctp.ResourceKind, body []byte, out interface{}) error {
	err := json.Unmarshal(body, out)
	if err != nil {
		return &ctp.NormalizationError{Kind: kind, Field: "body", Err: err}
	}

	return nil
}

func listResources[T any](ctx context.Context, httpClient *http.Client, projectKey string, kind ctp.ResourceKind, params *ctp.QueryParams) (*ctp.PagedQueryResponse[T], error) {
	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := httpClient.Get(ctx, resourcePath(projectKey, kind, ""), queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind.Plural(), err)
	}

	var list ctp.PagedQueryResponse[T]

	err = decodeBody(kind, resp.Body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func getResource[T any](ctx context.Context, httpClient *http.Client, projectKey string, kind ctp.ResourceKind, id string) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("getting %s: %w", kind, ctp.ErrIDRequired)
	}

	resp, err := httpClient.Get(ctx, resourcePath(projectKey, kind, id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", kind, err)
	}

	var resource T

	err = decodeBody(kind, resp.Body, &resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

func createResource[T any](ctx context.Context, httpClient *http.Client, projectKey string, kind ctp.ResourceKind, draft interface{}) (*T, error) {
	resp, err := httpClient.Post(ctx, resourcePath(projectKey, kind, ""), draft)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}

	var resource T

	err = decodeBody(kind, resp.Body, &resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}
