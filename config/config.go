// Package config reads the proxy's configuration from the process
// environment. It is read per request; nothing is cached between
// invocations.
package config

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Environment variable names.
const (
	EnvAPIKey          = "RETELL_API_KEY"
	EnvAPIKeyParameter = "RETELL_API_KEY_PARAMETER"
	EnvAgentID         = "RETELL_AGENT_ID"
	EnvTestToken       = "PUBLIC_TEST_TOKEN"
	EnvBaseURL         = "RETELL_BASE_URL"
)

// DefaultBaseURL is the Retell API root used when RETELL_BASE_URL is unset.
const DefaultBaseURL = "https://api.retellai.com"

// Config holds the server side secrets and the optional share token.
type Config struct {
	APIKey    string
	AgentID   string
	TestToken string
	BaseURL   string
}

// TokenRequired reports whether callers must present the share token. Any
// non-empty value, whitespace included, turns gating on.
func (c Config) TokenRequired() bool {
	return c.TestToken != ""
}

// Loader builds a Config from the environment. Parameters resolves the API
// key from SSM when RETELL_API_KEY is empty and RETELL_API_KEY_PARAMETER is
// set; a nil Parameters skips that lookup.
type Loader struct {
	Getenv     func(string) string
	Parameters ParameterStore
}

// ParameterStore fetches a decrypted secret by name.
type ParameterStore interface {
	Parameter(ctx context.Context, name string) (string, error)
}

// NewLoader returns a loader over os.Getenv with the SSM parameter store
// for the region in AWS_REGION.
func NewLoader() *Loader {
	return &Loader{
		Getenv:     os.Getenv,
		Parameters: NewSSMParameterStore(os.Getenv("AWS_REGION")),
	}
}

// raw returns the variable exactly as set. Secrets and the share token are
// compared byte for byte, so they are never trimmed.
func (l *Loader) raw(key string) string {
	get := l.Getenv
	if get == nil {
		get = os.Getenv
	}
	return get(key)
}

func (l *Loader) getenv(key string) string {
	return strings.TrimSpace(l.raw(key))
}

// Load reads the configuration. Missing secrets are reported by the caller,
// which owns the order of validation; only a failed SSM lookup is an error.
func (l *Loader) Load(ctx context.Context) (Config, error) {
	cfg := Config{
		APIKey:    l.raw(EnvAPIKey),
		AgentID:   l.raw(EnvAgentID),
		TestToken: l.raw(EnvTestToken),
		BaseURL:   strings.TrimRight(l.getenv(EnvBaseURL), "/"),
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if name := l.getenv(EnvAPIKeyParameter); cfg.APIKey == "" && name != "" && l.Parameters != nil {
		key, err := l.Parameters.Parameter(ctx, name)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed resolving %s from parameter %s", EnvAPIKey, name)
		}
		// Parameters written from a file usually end in a newline.
		cfg.APIKey = strings.TrimRight(key, "\r\n")
	}

	return cfg, nil
}

// Load reads the configuration with a default Loader.
func Load(ctx context.Context) (Config, error) {
	return NewLoader().Load(ctx)
}
