package proxy

import "strings"

// HttpMethod is an enum of the standard Http Methods.
type HttpMethod int

const (
	GET HttpMethod = iota
	HEAD
	POST
	PUT
	DELETE
	CONNECT
	OPTIONS
	TRACE
	PATCH

	// ANY matches every method. Handlers registered with it decide for
	// themselves which methods they accept.
	ANY
)

var methodNames = [...]string{"GET", "HEAD", "POST", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH", "ANY"}

// String returns the upper case name of the method.
func (m HttpMethod) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return "UNKNOWN"
	}
	return methodNames[m]
}

// ParseHttpMethod returns the method for name, ignoring case. The second
// value is false when name is not a standard method.
func ParseHttpMethod(name string) (HttpMethod, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range methodNames[:ANY] {
		if n == name {
			return HttpMethod(i), true
		}
	}
	return ANY, false
}

// Matches reports whether a request made with method satisfies m.
func (m HttpMethod) Matches(method string) bool {
	if m == ANY {
		return true
	}
	return strings.EqualFold(m.String(), method)
}
