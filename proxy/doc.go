// Package proxy routes aws api gateway v2 (http) proxy events to handler
// functions inside an aws lambda. It parses the inbound
// events.APIGatewayV2HTTPRequest into a Request, matches the path and method
// against routes registered with {name} placeholders, invokes the matched
// handler and shapes its result into the events.APIGatewayProxyResponse the
// gateway expects back.
//
// The router is deliberately small: matching is a linear scan over the routes
// in registration order, there is no middleware chain and no transport beyond
// the lambda runtime binding in Start.
package proxy
