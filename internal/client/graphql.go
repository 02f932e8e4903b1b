package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/ctp/internal/http"
	"github.com/fivetwenty-io/ctp/pkg/ctp"
)

// GraphQLClient implements ctp.GraphQLClient.
type GraphQLClient struct {
	httpClient *http.Client
	path       string
}

// NewGraphQLClient creates a new GraphQL client for the project endpoint.
func NewGraphQLClient(httpClient *http.Client, projectKey string) *GraphQLClient {
	return &GraphQLClient{
		httpClient: httpClient,
		path:       "/" + url.PathEscape(projectKey) + "/graphql",
	}
}

// Do implements ctp.GraphQLClient.Do.
func (c *GraphQLClient) Do(ctx context.Context, req *ctp.GraphQLRequest) (*ctp.GraphQLResponse, error) {
	raw, err := c.execute(ctx, req)
	if err != nil {
		return nil, err
	}

	var gqlResp ctp.GraphQLResponse

	err = decodeBody("", raw.Body, &gqlResp)
	if err != nil {
		return nil, err
	}

	return &gqlResp, nil
}

// Query implements ctp.GraphQLClient.Query.
func (c *GraphQLClient) Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	gqlResp, err := c.Do(ctx, &ctp.GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if len(gqlResp.Data) == 0 || string(gqlResp.Data) == "null" {
		return ErrGraphQLNoData
	}

	err = json.Unmarshal(gqlResp.Data, out)
	if err != nil {
		return &ctp.NormalizationError{Field: "data", Err: err}
	}

	return nil
}

// execute posts req and inspects the envelope. Whenever the server answered,
// the raw response is returned, also next to an error.
func (c *GraphQLClient) execute(ctx context.Context, req *ctp.GraphQLRequest) (*ctp.RawResponse, error) {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, ctp.ErrEmptyQuery
	}

	resp, err := c.httpClient.Post(ctx, c.path, req)
	if err != nil {
		if resp != nil {
			return &ctp.RawResponse{StatusCode: resp.StatusCode, Body: resp.Body}, fmt.Errorf("executing graphql query: %w", err)
		}

		return nil, fmt.Errorf("executing graphql query: %w", err)
	}

	raw := &ctp.RawResponse{StatusCode: resp.StatusCode, Body: resp.Body}

	var envelope struct {
		Data   json.RawMessage   `json:"data"`
		Errors []ctp.ErrorObject `json:"errors"`
	}

	err = decodeBody("", resp.Body, &envelope)
	if err != nil {
		return raw, err
	}

	if len(envelope.Errors) > 0 {
		return raw, &ctp.GraphQLResultError{
			StatusCode: resp.StatusCode,
			Errors:     envelope.Errors,
			Data:       envelope.Data,
		}
	}

	return raw, nil
}
