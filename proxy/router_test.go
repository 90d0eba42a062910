package proxy

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Valid(t *testing.T) {
	r := &Router{}
	assert.True(t, r.Valid())

	r.AddBuildError(errors.New("some error"))
	assert.False(t, r.Valid())
}

func TestRouter_AddRoute(t *testing.T) {
	r := &Router{}

	assert.Empty(t, r.Routes)

	route, err := NewRoute(GET, "/yolo", testHandler)
	assert.NoError(t, err)
	r.AddRoute(route)

	route2, err := NewRoute(GET, "/yolo2", testHandler)
	assert.NoError(t, err)
	r.AddRoute(route2)

	assert.Len(t, r.Routes, 2)
	assert.Equal(t, route, r.Routes[0])
	assert.Equal(t, route2, r.Routes[1])
}

func TestRouter_BuildErrors(t *testing.T) {
	r := &Router{}

	r.AddBuildError(errors.New("some error"))
	r.AddBuildError(errors.New("some other error"))

	err := r.BuildErrors()

	assert.Equal(t, "some other error: some error: failed building router", err.Error())
}

func TestRouter_AddRouteIfNoError(t *testing.T) {
	r := &Router{}

	r.AddRouteIfNoError(NewRoute(GET, "/yolo", testHandler))
	r.AddRouteIfNoError(NewRoute(GET, "asom (?<in-invalid>.*)", testHandler))

	assert.Len(t, r.Routes, 1)
	assert.Len(t, r.errors, 1)
	assert.Equal(t, "GET ^/yolo/?$", r.Routes[0].String())
	assert.False(t, r.Valid())
}

func TestRouter_ConvenienceMethods(t *testing.T) {
	r := &Router{}
	r.GET("/route", testHandler)
	r.POST("/route", testHandler)
	r.ANY("/route", testHandler)

	assert.Len(t, r.Routes, 3)
	assert.Equal(t, "GET ^/route/?$", r.Routes[0].String())
	assert.Equal(t, "POST ^/route/?$", r.Routes[1].String())
	assert.Equal(t, "ANY ^/route/?$", r.Routes[2].String())
}

func TestRouter_Route(t *testing.T) {
	r := &Router{}
	r.GET("/route", testHandler)

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.NoError(t, err)
	assert.Equal(t, 200, response.StatusCode)
}

func TestRouter_Route_firstMatchWins(t *testing.T) {
	r := &Router{}

	handler := func(body string) RouteHandler {
		return func(ctx *RouteContext) (events.APIGatewayProxyResponse, error) {
			return events.APIGatewayProxyResponse{StatusCode: 200, Body: body}, nil
		}
	}

	r.POST("/route", handler("post"))
	r.ANY("/route", handler("any"))
	r.GET("/route/to/(?P<id>[0-9]+)", handler("id"))

	response, err := r.Route(context.Background(), testRequest(POST, "/route"))
	assert.NoError(t, err)
	assert.Equal(t, "post", response.Body)

	response, err = r.Route(context.Background(), testRequest(DELETE, "/route"))
	assert.NoError(t, err)
	assert.Equal(t, "any", response.Body)

	response, err = r.Route(context.Background(), testRequest(GET, "/route/to/7"))
	assert.NoError(t, err)
	assert.Equal(t, "id", response.Body)
}

func TestRouter_Route_catchError(t *testing.T) {
	r := &Router{}

	r.GET("/route", func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 500}, errors.New("failed")
	})
	r.AddErrorHandler(func(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 503, Body: err.Error()}, nil
	})

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.NoError(t, err)
	assert.Equal(t, 503, response.StatusCode)
	assert.Equal(t, "failed", response.Body)
}

func TestRouter_Route_catchError_notFound(t *testing.T) {
	r := &Router{}
	r.AddErrorHandler(func(ctx context.Context, request events.APIGatewayV2HTTPRequest, err error) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 404, Body: err.Error()}, nil
	})

	response, err := r.Route(context.Background(), testRequest(GET, "/yolo"))

	assert.NoError(t, err)
	assert.Equal(t, "'GET /yolo' not found", response.Body)
}

func TestRouter_Route_noCatchError_error(t *testing.T) {
	r := &Router{}
	r.GET("/route", func(context *RouteContext) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{StatusCode: 500}, errors.New("failed")
	})

	response, err := r.Route(context.Background(), testRequest(GET, "/route"))

	assert.Error(t, err)
	assert.Equal(t, "failed", err.Error())
	assert.Equal(t, 500, response.StatusCode)
}

func TestRouter_Route_noCatchAll_noMatch(t *testing.T) {
	r := &Router{}

	_, err := r.Route(context.Background(), testRequest(GET, "/yolo"))

	assert.Error(t, err)
	assert.Equal(t, "'GET /yolo' not found", err.Error())
}

func TestRouter_Route_CatchAll_noMatch(t *testing.T) {
	r := &Router{}
	r.AddCatchAllHandler(NotFound)

	response, err := r.Route(context.Background(), testRequest(GET, "/yolo"))

	assert.NoError(t, err)
	assert.Equal(t, 404, response.StatusCode)
	assert.JSONEq(t, `{"error": "Not Found"}`, response.Body)
}
