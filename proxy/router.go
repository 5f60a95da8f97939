package proxy

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/harborlane/chute/lambdautils"
)

// Outcome classifies the result of matching a path and method against the
// route table.
type Outcome int

const (
	// Matched means a route claimed both the path and the method.
	Matched Outcome = iota

	// PathNotFound means no route matched the path.
	PathNotFound

	// MethodNotAllowed means at least one route matched the path but none of
	// them serves the method.
	MethodNotAllowed
)

// Match is the result of a route table lookup. Route and Params are only set
// when Outcome is Matched.
type Match struct {
	Outcome Outcome
	Route   *Route
	Params  map[string]string
}

// ErrorHook defines the function interface the router uses to hand handler
// failures to an external collaborator. The client only ever sees a generic
// 500 body; the hook receives the underlying error.
type ErrorHook func(ctx context.Context, event events.APIGatewayV2HTTPRequest, err error)

// Router routes an incoming events.APIGatewayV2HTTPRequest to the first
// registered route matching its path and method and returns the
// events.APIGatewayProxyResponse to hand back to the gateway.
//
// Register all routes before serving begins; once Dispatch is in use the
// table is read concurrently without locking and must not change. Routes are
// scanned in registration order, so when two patterns overlap (a literal and
// a variable at the same position) the earlier registration wins.
//
// Example:
//
//	func getUser(ctx context.Context, req *proxy.Request) (proxy.Response, error) {
//		return proxy.JSON(map[string]string{"user_id": req.PathParams["user_id"]}), nil
//	}
//
//	func main() {
//		router := &proxy.Router{Logger: logger}
//		router.GET("/users/{user_id}", getUser)
//
//		if err := router.Start(); err != nil {
//			logger.Fatal("startup failed", zap.Error(err))
//		}
//	}
type Router struct {
	Routes []*Route

	// Logger receives handler failures when no OnError hook is set.
	Logger *zap.Logger

	// OnError, when set, observes handler failures instead of Logger.
	OnError ErrorHook

	errors []error
}

// Route registers a handler for the pattern and methods. Failures (malformed
// patterns, empty method lists, duplicate claims) accumulate on the router;
// check Valid before serving so a misconfigured route cannot silently vanish.
func (router *Router) Route(pattern string, methods []string, handler Handler) {
	router.addRouteIfNoError(NewRoute(pattern, methods, handler))
}

// GET registers a handler for GET requests on the pattern.
func (router *Router) GET(pattern string, handler Handler) {
	router.Route(pattern, []string{"GET"}, handler)
}

// HEAD registers a handler for HEAD requests on the pattern.
func (router *Router) HEAD(pattern string, handler Handler) {
	router.Route(pattern, []string{"HEAD"}, handler)
}

// POST registers a handler for POST requests on the pattern.
func (router *Router) POST(pattern string, handler Handler) {
	router.Route(pattern, []string{"POST"}, handler)
}

// PUT registers a handler for PUT requests on the pattern.
func (router *Router) PUT(pattern string, handler Handler) {
	router.Route(pattern, []string{"PUT"}, handler)
}

// DELETE registers a handler for DELETE requests on the pattern.
func (router *Router) DELETE(pattern string, handler Handler) {
	router.Route(pattern, []string{"DELETE"}, handler)
}

// PATCH registers a handler for PATCH requests on the pattern.
func (router *Router) PATCH(pattern string, handler Handler) {
	router.Route(pattern, []string{"PATCH"}, handler)
}

// OPTIONS registers a handler for OPTIONS requests on the pattern.
func (router *Router) OPTIONS(pattern string, handler Handler) {
	router.Route(pattern, []string{"OPTIONS"}, handler)
}

func (router *Router) addRouteIfNoError(route *Route, err error) {
	if err != nil {
		router.errors = append(router.errors, err)
		return
	}

	if err := router.checkDuplicate(route); err != nil {
		router.errors = append(router.errors, err)
		return
	}

	router.Routes = append(router.Routes, route)
}

// checkDuplicate rejects a route whose pattern matches exactly the same paths
// as an existing route while claiming one of its methods. Registration order
// breaks ties between overlapping patterns, but order could never make a
// structurally identical later route reachable.
func (router *Router) checkDuplicate(route *Route) error {
	for _, existing := range router.Routes {
		if !existing.Pattern.Equivalent(route.Pattern) {
			continue
		}

		for _, method := range route.Methods {
			if existing.Allows(method) {
				return errors.Errorf("duplicate route '%s %s': already claimed by '%s'", method, route.Pattern, existing)
			}
		}
	}

	return nil
}

// Valid returns true if all routes registered so far were built successfully.
func (router *Router) Valid() bool {
	return len(router.errors) == 0
}

// BuildErrors returns a single error that encapsulates all the route errors
// found during router construction.
func (router *Router) BuildErrors() error {
	topError := errors.New("failed building router")

	for _, err := range router.errors {
		topError = errors.Wrap(topError, err.Error())
	}

	return topError
}

// Match looks the path and method up in the route table. Routes are scanned
// in registration order and the first one claiming both the path and the
// method wins. Matching only reads the immutable table: identical inputs
// always yield identical outcomes, and concurrent lookups are safe once
// registration is finished.
func (router *Router) Match(path, method string) Match {
	method = strings.ToUpper(method)
	pathMatched := false

	for _, route := range router.Routes {
		params, ok := route.Pattern.Match(path)
		if !ok {
			continue
		}

		if !route.Allows(method) {
			pathMatched = true
			continue
		}

		return Match{Outcome: Matched, Route: route, Params: params}
	}

	if pathMatched {
		return Match{Outcome: MethodNotAllowed}
	}

	return Match{Outcome: PathNotFound}
}

// Dispatch routes one inbound event through the table and returns the
// response envelope for the gateway. Unmatched paths produce a 404, matched
// paths without the method a 405, and any failure while building the request
// or running the handler a generic 500 with the detail handed to the error
// collaborator. Every code path ends in a well-formed response and the
// returned error is always nil, so Dispatch can be passed to the lambda
// runtime directly. A handler is invoked at most once per event.
func (router *Router) Dispatch(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayProxyResponse, error) {
	match := router.Match(event.RawPath, event.RequestContext.HTTP.Method)

	switch match.Outcome {
	case PathNotFound:
		return errorResponse(404, "Not Found"), nil
	case MethodNotAllowed:
		return errorResponse(405, "Method Not Allowed"), nil
	}

	req, err := newRequest(event, match.Params)
	if err != nil {
		router.observeError(ctx, event, err)
		return errorResponse(500, "Internal Server Error"), nil
	}

	response, err := match.Route.Handler(ctx, req)
	if err == nil {
		err = response.err
	}

	if err != nil {
		router.observeError(ctx, event, err)
		return errorResponse(500, "Internal Server Error"), nil
	}

	return response.proxy(), nil
}

// observeError hands a failure to the configured hook, or logs it with a
// generated error id and the lambda execution metadata. The detail never
// reaches the client.
func (router *Router) observeError(ctx context.Context, event events.APIGatewayV2HTTPRequest, err error) {
	if router.OnError != nil {
		router.OnError(ctx, event, err)
		return
	}

	logger := router.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := append(lambdautils.FromContext(ctx).Fields(),
		zap.String("error_id", uuid.New().String()),
		zap.String("method", event.RequestContext.HTTP.Method),
		zap.String("path", event.RawPath),
		zap.Error(err),
	)

	logger.Error("handler failed", fields...)
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	return JSON(map[string]string{"error": message}).WithStatus(status).proxy()
}
