package ctp

import (
	"encoding/json"
	"fmt"
	"io"
)

// GraphQLRequest is the body posted to the GraphQL endpoint.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse is the decoded GraphQL envelope.
type GraphQLResponse struct {
	Data       json.RawMessage        `json:"data,omitempty"`
	Errors     []ErrorObject          `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// WriteGraphQLErrors enumerates errs as numbered entries with their message,
// locations and extensions.
func WriteGraphQLErrors(w io.Writer, errs []ErrorObject) {
	for i, gqlErr := range errs {
		locations, _ := json.Marshal(gqlErr.Locations)
		extensions, _ := json.Marshal(gqlErr.Extensions)

		_, _ = fmt.Fprintf(w, "  [%d] Message   : %s\n", i+1, gqlErr.Message)
		_, _ = fmt.Fprintf(w, "       Locations : %s\n", locations)
		_, _ = fmt.Fprintf(w, "       Extensions: %s\n", extensions)
	}
}
