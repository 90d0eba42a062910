package webcall

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/prognoshealth/retellproxy/lambdautils"
	"github.com/prognoshealth/retellproxy/proxy"
)

// Kind classifies the failures the handler reports.
type Kind int

const (
	Unclassified Kind = iota
	ConfigurationError
	AuthorizationError
	MethodNotAllowedError
	UpstreamError
	MalformedUpstreamResponse
	TransportError
)

var kindNames = map[Kind]string{
	Unclassified:              "unclassified",
	ConfigurationError:        "configuration",
	AuthorizationError:        "authorization",
	MethodNotAllowedError:     "method_not_allowed",
	UpstreamError:             "upstream",
	MalformedUpstreamResponse: "malformed_upstream_response",
	TransportError:            "transport",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error is a failure with the status and JSON body it is answered with.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details interface{}
	Headers map[string]string

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, or nil.
func (e *Error) Unwrap() error {
	return e.cause
}

func configurationError(message string, cause error) *Error {
	return &Error{Kind: ConfigurationError, Status: http.StatusInternalServerError, Message: message, cause: cause}
}

func transportError(cause error) *Error {
	return &Error{Kind: TransportError, Status: http.StatusInternalServerError, Message: cause.Error(), cause: cause}
}

// errorBody is the JSON shape of every failure.
type errorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorHandler is the router's error handler. It answers *Error values with
// their own status and anything else with a 500, so no error escapes to the
// lambda runtime.
func ErrorHandler(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: Unclassified, Status: http.StatusInternalServerError, Message: err.Error(), cause: err}
	}

	logFailure(ctx, request, e)

	response, merr := proxy.JSON(e.Status, errorBody{Error: e.Message, Details: e.Details}, e.Headers)
	if merr != nil {
		// Details came from upstream and could not be encoded; drop them.
		return proxy.JSON(e.Status, errorBody{Error: e.Message}, e.Headers)
	}

	return response, nil
}

func logFailure(ctx context.Context, request events.APIGatewayV2HTTPRequest, e *Error) {
	fields := []any{
		"operation", "create_web_call",
		"outcome", "failure",
		"method", request.RequestContext.HTTP.Method,
		"status_code", e.Status,
		"error_kind", e.Kind.String(),
		"message", e.Message,
	}
	if e.cause != nil {
		fields = append(fields, "error", e.cause.Error())
	}

	logger := lambdautils.Logger(ctx)
	if e.Status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", fields...)
		return
	}
	logger.WarnContext(ctx, "request failed", fields...)
}
