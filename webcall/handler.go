// Package webcall implements the endpoint that creates a Retell web call on
// behalf of a browser client. The browser never sees the server side API
// key; it receives only the access token and call id of the new call.
package webcall

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/prognoshealth/retellproxy/config"
	"github.com/prognoshealth/retellproxy/lambdautils"
	"github.com/prognoshealth/retellproxy/proxy"
	"github.com/prognoshealth/retellproxy/retell"
)

const (
	// TokenHeader and TokenQuery carry the caller's share token.
	TokenHeader = "x-test-token"
	TokenQuery  = "token"

	allowedMethods = "GET, POST"
)

// ConfigLoader supplies the configuration for one request.
type ConfigLoader interface {
	Load(ctx context.Context) (config.Config, error)
}

// Service holds what the handler needs beyond the request. Configuration is
// loaded on every request.
type Service struct {
	Config     ConfigLoader
	HTTPClient *http.Client
}

// NewService returns a service reading the process environment and using
// http.DefaultClient for upstream calls.
func NewService() *Service {
	return &Service{Config: config.NewLoader()}
}

// Diagnostic is the GET response body.
type Diagnostic struct {
	OK             bool   `json:"ok"`
	Msg            string `json:"msg"`
	AgentIDPresent bool   `json:"agent_id_present"`
	APIKeyPresent  bool   `json:"api_key_present"`
	TokenRequired  bool   `json:"token_required"`
}

// Handler validates the request, creates the web call upstream on POST and
// returns the normalized result. Failures are returned as *Error for the
// router's ErrorHandler to render.
func (s *Service) Handler(ctx *proxy.RouteContext) (events.APIGatewayProxyResponse, error) {
	cfg, err := s.Config.Load(ctx.Context)
	if err != nil {
		return events.APIGatewayProxyResponse{}, configurationError(err.Error(), err)
	}

	if err := validate(ctx, cfg); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	switch ctx.Method() {
	case http.MethodGet:
		return proxy.JSON(http.StatusOK, Diagnostic{
			OK:             true,
			Msg:            "Use POST to create web call",
			AgentIDPresent: cfg.AgentID != "",
			APIKeyPresent:  cfg.APIKey != "",
			TokenRequired:  cfg.TokenRequired(),
		}, nil)
	case http.MethodPost:
	default:
		return events.APIGatewayProxyResponse{}, &Error{
			Kind:    MethodNotAllowedError,
			Status:  http.StatusMethodNotAllowed,
			Message: "Method Not Allowed",
			Headers: map[string]string{"Allow": allowedMethods},
		}
	}

	client := retell.NewClient(cfg.BaseURL, cfg.APIKey, s.HTTPClient)

	attempt, err := client.CreateWebCall(ctx.Context, cfg.AgentID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, transportError(err)
	}

	created, err := Normalize(attempt)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	lambdautils.Logger(ctx.Context).InfoContext(ctx.Context, "web call created",
		"operation", "create_web_call",
		"outcome", "success",
		"endpoint", attempt.Endpoint.String(),
		"call_id", created.CallID,
	)

	return proxy.JSON(http.StatusOK, created, nil)
}

// validate checks, in order, the two secrets and the share token.
func validate(ctx *proxy.RouteContext, cfg config.Config) error {
	if cfg.APIKey == "" {
		return configurationError("Missing "+config.EnvAPIKey, nil)
	}

	if cfg.AgentID == "" {
		return configurationError("Missing "+config.EnvAgentID, nil)
	}

	if cfg.TokenRequired() && callerToken(ctx) != cfg.TestToken {
		return &Error{Kind: AuthorizationError, Status: http.StatusForbidden, Message: "Forbidden"}
	}

	return nil
}

// callerToken prefers the header over the query parameter.
func callerToken(ctx *proxy.RouteContext) string {
	if t := ctx.Header(TokenHeader); t != "" {
		return t
	}
	return ctx.Query(TokenQuery)
}
