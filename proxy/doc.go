// Package proxy routes aws api gateway v2 (http) events to handlers and
// builds the events.APIGatewayProxyResponse they return. The same router can
// also be served through net/http, which is how the function runs locally or
// behind runtimes that speak plain http.
//
// The router is deliberately small: it matches method and path pattern in
// registration order and nothing else.
package proxy
