package proxy

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"

	"github.com/prognoshealth/retellproxy/lambdautils"
)

// maxBodyBytes bounds what ServeHTTP reads from an inbound request body.
const maxBodyBytes = 1 << 20

// NewRequest converts a net/http request into the api gateway v2 event the
// router consumes. Header names are lower-cased and repeated values joined
// with a comma, as api gateway does.
func NewRequest(r *http.Request) (events.APIGatewayV2HTTPRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return events.APIGatewayV2HTTPRequest{}, errors.Wrap(err, "failed reading request body")
	}

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		headers[strings.ToLower(k)] = strings.Join(v, ",")
	}

	var query map[string]string
	if values := r.URL.Query(); len(values) > 0 {
		query = make(map[string]string, len(values))
		for k, v := range values {
			query[k] = strings.Join(v, ",")
		}
	}

	request := events.APIGatewayV2HTTPRequest{
		Version:               "2.0",
		RawPath:               r.URL.Path,
		RawQueryString:        r.URL.RawQuery,
		Headers:               headers,
		QueryStringParameters: query,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			DomainName: r.Host,
			TimeEpoch:  time.Now().UnixMilli(),
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method:    r.Method,
				Path:      r.URL.Path,
				Protocol:  r.Proto,
				SourceIP:  r.RemoteAddr,
				UserAgent: r.UserAgent(),
			},
		},
	}

	if utf8.Valid(body) {
		request.Body = string(body)
	} else {
		request.Body = base64.StdEncoding.EncodeToString(body)
		request.IsBase64Encoded = true
	}

	return request, nil
}

// WriteResponse writes an api gateway proxy response to w.
func WriteResponse(w http.ResponseWriter, response events.APIGatewayProxyResponse) error {
	for k, v := range response.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range response.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	body := []byte(response.Body)
	if response.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(response.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return errors.Wrap(err, "unable to decode response body")
		}
		body = b
	}

	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

// ServeHTTP lets the router serve plain net/http traffic. Unhandled routing
// errors become a bare 500.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request, err := NewRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response, err := router.Route(r.Context(), request)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := WriteResponse(w, response); err != nil {
		lambdautils.Logger(r.Context()).WarnContext(r.Context(), "failed writing response",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", response.StatusCode,
			"error", err.Error(),
		)
	}
}
