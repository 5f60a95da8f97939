package proxy

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// header is a single response header. Headers keep their insertion order so
// the emitted envelope is deterministic.
type header struct {
	name  string
	value string
}

// Response is the result a handler returns. It is a plain value: WithStatus
// and WithHeader return updated copies, so responses derived from a shared
// base never alias each other.
type Response struct {
	StatusCode int

	headers []header
	body    string
	err     error
}

// JSON returns a 200 response with a Content-Type of application/json and v
// serialized as the body. A value that cannot be serialized turns the
// invocation into a handler failure when the response is emitted.
func JSON(v interface{}) Response {
	response := Response{
		StatusCode: 200,
		headers:    []header{{name: "Content-Type", value: "application/json"}},
	}

	body, err := json.Marshal(v)
	if err != nil {
		response.err = errors.Wrap(err, "failed serializing response body")
		return response
	}

	response.body = string(body)
	return response
}

// WithStatus returns a copy of the response with the status code replaced.
func (response Response) WithStatus(code int) Response {
	response.StatusCode = code
	return response
}

// WithHeader returns a copy of the response with the header set. Setting a
// name again overwrites the value but keeps the original position.
func (response Response) WithHeader(name, value string) Response {
	headers := make([]header, len(response.headers), len(response.headers)+1)
	copy(headers, response.headers)
	response.headers = headers

	for i := range response.headers {
		if response.headers[i].name == name {
			response.headers[i].value = value
			return response
		}
	}

	response.headers = append(response.headers, header{name: name, value: value})
	return response
}

// Header returns the value set for name, or "".
func (response Response) Header(name string) string {
	for _, h := range response.headers {
		if h.name == name {
			return h.value
		}
	}

	return ""
}

// Body returns the serialized body text.
func (response Response) Body() string {
	return response.body
}

// proxy flattens the response into the gateway envelope. A zero status is
// emitted as 200.
func (response Response) proxy() events.APIGatewayProxyResponse {
	status := response.StatusCode
	if status == 0 {
		status = 200
	}

	headers := make(map[string]string, len(response.headers))
	for _, h := range response.headers {
		headers[h.name] = h.value
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       response.body,
	}
}
