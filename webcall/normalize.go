package webcall

import (
	"net/http"
	"strings"

	"github.com/prognoshealth/retellproxy/retell"
)

// Created is the only data returned to the caller on success.
type Created struct {
	AccessToken string      `json:"access_token"`
	CallID      interface{} `json:"call_id"`
}

// statusHints replaces the upstream message for statuses with a known cause.
var statusHints = map[int]string{
	http.StatusUnauthorized:    "API key inválida o ausente (revisa RETELL_API_KEY)",
	http.StatusForbidden:       "La API key no tiene permisos para este agente",
	http.StatusNotFound:        "Endpoint o agente no encontrado (revisa RETELL_AGENT_ID)",
	http.StatusTooManyRequests: "Límite de peticiones de Retell alcanzado, intenta más tarde",
}

const (
	genericUpstreamMessage = "Retell API error"
	missingTokenMessage    = "Respuesta sin access_token"
)

// Normalize turns the final attempt into the caller's payload, or an *Error
// when the attempt failed or its body carries no access token. Only a
// non-empty string counts as an access token: a number, object or null in
// that field is answered with a 502 rather than forwarded.
func Normalize(a *retell.Attempt) (Created, error) {
	if !a.OK {
		return Created{}, &Error{
			Kind:    UpstreamError,
			Status:  a.Status,
			Message: upstreamMessage(a),
			Details: details(a),
		}
	}

	token := a.String("access_token")
	if token == "" {
		return Created{}, &Error{
			Kind:    MalformedUpstreamResponse,
			Status:  http.StatusBadGateway,
			Message: missingTokenMessage,
			Details: details(a),
		}
	}

	return Created{AccessToken: token, CallID: a.Data["call_id"]}, nil
}

func upstreamMessage(a *retell.Attempt) string {
	if hint, ok := statusHints[a.Status]; ok {
		return hint
	}
	if msg := a.String("error"); msg != "" {
		return msg
	}
	if msg := a.String("message"); msg != "" {
		return msg
	}
	return genericUpstreamMessage
}

// details is the parsed body, or the raw text when it was not a JSON
// object. Empty bodies give no details.
func details(a *retell.Attempt) interface{} {
	if a.Parsed {
		if len(a.Data) == 0 {
			return nil
		}
		return a.Data
	}
	if raw := strings.TrimSpace(a.Raw); raw != "" {
		return raw
	}
	return nil
}
