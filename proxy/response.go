package proxy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ContentTypeJSON is the content type of every JSON response.
const ContentTypeJSON = "application/json; charset=utf-8"

// JSON returns a response with v marshalled as the body. Extra headers are
// merged over the Content-Type header.
func JSON(status int, v interface{}, headers map[string]string) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, errors.Wrap(err, "failed marshalling response body")
	}

	h := map[string]string{"Content-Type": ContentTypeJSON}
	for k, v := range headers {
		h[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    h,
		Body:       string(b),
	}, nil
}

// NotFound is a CatchAllHandler answering with a JSON 404.
func NotFound(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	return JSON(http.StatusNotFound, map[string]string{"error": "Not Found"}, nil)
}
