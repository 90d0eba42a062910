package proxy

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// RouteContext contains all the request information for a route when matched.
type RouteContext struct {
	Context context.Context
	Request events.APIGatewayV2HTTPRequest
	Params  map[string]string
}

// Body returns a string representation of the request body
func (ctx *RouteContext) Body() (string, error) {
	if ctx.Request.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(ctx.Request.Body)
		if err != nil {
			return "", errors.Wrap(err, "unable to decode request body")
		}

		return string(b), nil
	}

	return ctx.Request.Body, nil
}

// Method returns the upper case http method of the request.
func (ctx *RouteContext) Method() string {
	return strings.ToUpper(ctx.Request.RequestContext.HTTP.Method)
}

// Header returns the value of the named header. API Gateway lower-cases
// header names but other producers of these events do not, so the lookup
// ignores case.
func (ctx *RouteContext) Header(name string) string {
	if v, ok := ctx.Request.Headers[name]; ok {
		return v
	}
	if v, ok := ctx.Request.Headers[strings.ToLower(name)]; ok {
		return v
	}
	for k, v := range ctx.Request.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Query returns the named query string parameter or "" when absent.
func (ctx *RouteContext) Query(name string) string {
	return ctx.Request.QueryStringParameters[name]
}
