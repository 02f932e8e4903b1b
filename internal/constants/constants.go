package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default deadline for one API call, retries included.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout bounds a single attempt of a token request.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// LowRetryMax is the default maximum number of retries.
	LowRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination and display limits.
const (
	// DemoPageSize is the page size of the list scenarios.
	DemoPageSize = 2

	// MaxPageSize is the largest page the API accepts.
	MaxPageSize = 500
)

// Output formats.
const (
	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"

	// FormatTable represents table output format.
	FormatTable = "table"

	// FormatAuto selects table on a terminal and JSON otherwise.
	FormatAuto = "auto"
)

// Log formats.
const (
	// LogFormatConsole writes human readable log lines.
	LogFormatConsole = "console"

	// LogFormatJSON writes one JSON object per log line.
	LogFormatJSON = "json"
)

// Demo data used by the GraphQL create scenario.
const (
	// DemoProductTypeKey is the product type new demo products are created with.
	DemoProductTypeKey = "bedding-bundle"

	// DemoPassword is the password of signed up demo customers.
	DemoPassword = "Test@1234"

	// DemoFirstName is the first name of signed up demo customers.
	DemoFirstName = "Dinesh"

	// DemoLastName is the last name of signed up demo customers.
	DemoLastName = "Kumar"
)

// UserAgent is sent with every request unless overridden.
const UserAgent = "ctp-go/1.0.0"

// MinimumArgumentCount is the number of arguments of commands taking an ID.
const MinimumArgumentCount = 1
