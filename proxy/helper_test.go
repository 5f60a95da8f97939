package proxy

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

func testHandler(ctx context.Context, req *Request) (Response, error) {
	return JSON(map[string]bool{"ok": true}), nil
}

func testEvent(method, path string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		RawPath: path,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
			},
		},
		Headers: map[string]string{},
	}
}
