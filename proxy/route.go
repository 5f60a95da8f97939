package proxy

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Handler defines the function interface a route executes when its pattern
// and one of its methods match the incoming request.
type Handler func(ctx context.Context, req *Request) (Response, error)

// Route associates a compiled pattern with the set of methods it serves and
// the handler invoked on a match. Routes are owned by the router for the life
// of the application.
type Route struct {
	Pattern *Pattern
	Methods []string
	Handler Handler
}

// NewRoute returns a Route for the specified pattern, methods and handler.
// Methods are upper-cased and deduplicated keeping first occurrence; at least
// one is required.
func NewRoute(pattern string, methods []string, handler Handler) (*Route, error) {
	compiled, err := CompilePattern(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed compiling pattern '%s'", pattern)
	}

	if len(methods) == 0 {
		return nil, errors.Errorf("no methods for pattern '%s'", pattern)
	}

	if handler == nil {
		return nil, errors.Errorf("nil handler for pattern '%s'", pattern)
	}

	var normalized []string

	for _, method := range methods {
		method = strings.ToUpper(method)

		if !containsMethod(normalized, method) {
			normalized = append(normalized, method)
		}
	}

	return &Route{Pattern: compiled, Methods: normalized, Handler: handler}, nil
}

// Allows returns true if the route serves the given method.
func (route *Route) Allows(method string) bool {
	return containsMethod(route.Methods, strings.ToUpper(method))
}

func containsMethod(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}

	return false
}

// String returns a string representation of this route.
func (route *Route) String() string {
	return fmt.Sprintf("%s %s", strings.Join(route.Methods, ","), route.Pattern)
}
