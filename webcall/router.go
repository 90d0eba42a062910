package webcall

import (
	"github.com/prognoshealth/retellproxy/proxy"
)

// Paths the handler answers on. The root path serves deployments that mount
// the function on its own route.
var Paths = []string{"/api/create-web-call", "/"}

// NewRouter returns a router sending every method on Paths to s.Handler, with
// JSON answers for unknown paths and for every error.
func NewRouter(s *Service) (*proxy.Router, error) {
	router := &proxy.Router{}
	for _, p := range Paths {
		router.ANY(p, s.Handler)
	}
	router.AddCatchAllHandler(proxy.NotFound)
	router.AddErrorHandler(ErrorHandler)

	if !router.Valid() {
		return nil, router.BuildErrors()
	}

	return router, nil
}
