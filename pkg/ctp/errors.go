package ctp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind is the closed set of failure classes produced by this package.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindConfig
	ErrorKindBuild
	ErrorKindTransport
	ErrorKindAPI
	ErrorKindGraphQL
	ErrorKindNormalization
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConfig:
		return "config"
	case ErrorKindBuild:
		return "build"
	case ErrorKindTransport:
		return "transport"
	case ErrorKindAPI:
		return "api"
	case ErrorKindGraphQL:
		return "graphql"
	case ErrorKindNormalization:
		return "normalization"
	case ErrorKindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// ConfigError reports missing or invalid connection settings.
type ConfigError struct {
	Missing []string
	Invalid []string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, "missing required configuration: "+strings.Join(e.Missing, ", "))
	}

	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid configuration: "+strings.Join(e.Invalid, ", "))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if len(parts) == 0 {
		return "invalid configuration"
	}

	return strings.Join(parts, "; ")
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// BuildError reports a configuration that cannot be turned into a client.
type BuildError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("building client: %v", e.Err)
	}

	return fmt.Sprintf("building client: invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorLocation points into a GraphQL document.
type ErrorLocation struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// ErrorObject is a single entry of an "errors" array. REST errors fill Code,
// GraphQL errors fill Locations, Path and Extensions.
type ErrorObject struct {
	Code       string                 `json:"code,omitempty"       yaml:"code,omitempty"`
	Message    string                 `json:"message"              yaml:"message"`
	Locations  []ErrorLocation        `json:"locations,omitempty"  yaml:"locations,omitempty"`
	Path       []interface{}          `json:"path,omitempty"       yaml:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// APIError represents a non-2xx response from the API.
type APIError struct {
	StatusCode int           `json:"statusCode"          yaml:"statusCode"`
	Message    string        `json:"message"             yaml:"message"`
	Errors     []ErrorObject `json:"errors,omitempty"    yaml:"errors,omitempty"`
	Method     string        `json:"-"                   yaml:"-"`
	Path       string        `json:"-"                   yaml:"-"`
	Body       []byte        `json:"-"                   yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && len(e.Errors) > 0 {
		msg = e.Errors[0].Message
	}

	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	if e.Path != "" {
		return fmt.Sprintf("api error (status %d) %s %s: %s", e.StatusCode, e.Method, e.Path, msg)
	}

	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, msg)
}

// FirstError returns the first error object or nil.
func (e *APIError) FirstError() *ErrorObject {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// GraphQLResultError reports a 2xx GraphQL response whose body carries errors.
type GraphQLResultError struct {
	StatusCode int
	Errors     []ErrorObject
	Data       json.RawMessage
}

// Error implements the error interface.
func (e *GraphQLResultError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "graphql: unknown error"
	case 1:
		return "graphql: " + e.Errors[0].Message
	default:
		return fmt.Sprintf("graphql: %s (and %d more errors)", e.Errors[0].Message, len(e.Errors)-1)
	}
}

// NormalizationError reports a response body that does not match the
// expected resource shape.
type NormalizationError struct {
	Kind  ResourceKind
	Field string
	Err   error
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	subject := "response"
	if e.Kind != "" {
		subject = e.Kind.Plural() + " response"
	}

	if e.Err != nil {
		return fmt.Sprintf("normalizing %s: field %q: %v", subject, e.Field, e.Err)
	}

	return fmt.Sprintf("normalizing %s: missing field %q", subject, e.Field)
}

// Unwrap returns the underlying error.
func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIURLRequired      = errors.New("API URL is required")
	ErrAuthURLRequired     = errors.New("auth URL is required")
	ErrProjectKeyRequired  = errors.New("project key is required")
	ErrCredentialsRequired = errors.New("client id and client secret are required")
	ErrNoHostInURL         = errors.New("no host specified in URL")
	ErrUnsupportedScheme   = errors.New("unsupported URL scheme")
	ErrUnknownResourceKind = errors.New("unknown resource kind")
	ErrEmptyQuery          = errors.New("graphql query is empty")
	ErrIDRequired          = errors.New("resource id is required")
)

// Classify maps an error chain onto the closed ErrorKind set.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}

	var (
		configErr    *ConfigError
		buildErr     *BuildError
		transportErr *TransportError
		apiErr       *APIError
		graphqlErr   *GraphQLResultError
		normErr      *NormalizationError
	)

	switch {
	case errors.As(err, &graphqlErr):
		return ErrorKindGraphQL
	case errors.As(err, &apiErr):
		return ErrorKindAPI
	case errors.As(err, &transportErr):
		return ErrorKindTransport
	case errors.As(err, &normErr):
		return ErrorKindNormalization
	case errors.As(err, &buildErr):
		return ErrorKindBuild
	case errors.As(err, &configErr):
		return ErrorKindConfig
	default:
		return ErrorKindUnknown
	}
}

// GraphQLErrors extracts structured GraphQL errors from err. It covers both a
// 2xx response carrying errors and a 4xx response from the GraphQL endpoint
// whose body uses the GraphQL error shape.
func GraphQLErrors(err error) ([]ErrorObject, bool) {
	graphqlErr := &GraphQLResultError{}
	if errors.As(err, &graphqlErr) {
		return graphqlErr.Errors, len(graphqlErr.Errors) > 0
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) && strings.HasSuffix(apiErr.Path, "/graphql") {
		return apiErr.Errors, len(apiErr.Errors) > 0
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}

	return false
}

// ParseAPIError builds an APIError from a response. Bodies that are not JSON
// are kept verbatim and the status text is used as the message.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{}

	if len(body) > 0 {
		var payload struct {
			StatusCode       int           `json:"statusCode"`
			Message          string        `json:"message"`
			Errors           []ErrorObject `json:"errors"`
			Error            string        `json:"error"`
			ErrorDescription string        `json:"error_description"`
		}

		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Message
			apiErr.Errors = payload.Errors

			if apiErr.Message == "" && payload.Error != "" {
				apiErr.Message = payload.Error
				if payload.ErrorDescription != "" {
					apiErr.Message += ": " + payload.ErrorDescription
				}
			}
		}
	}

	apiErr.StatusCode = statusCode
	apiErr.Body = body

	return apiErr
}
