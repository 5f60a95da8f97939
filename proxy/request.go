package proxy

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Request carries everything a handler may read about one inbound event. A
// Request is built fresh per invocation and owned by that invocation alone;
// the router never touches it again once the handler runs.
type Request struct {
	// PathParams holds the variable segments bound during matching, verbatim.
	PathParams map[string]string

	// QueryParams holds every query value for a key in encounter order. A key
	// without '=' is present with a single empty value.
	QueryParams map[string][]string

	// Body is the raw request body, nil when the event carried none. Bodies
	// the gateway base64-encoded arrive here already decoded.
	Body *string

	headers map[string]string
	json    *gjson.Result
}

// newRequest builds a Request from the inbound event and the path parameters
// bound during matching.
func newRequest(event events.APIGatewayV2HTTPRequest, params map[string]string) (*Request, error) {
	if params == nil {
		params = map[string]string{}
	}

	req := &Request{
		PathParams:  params,
		QueryParams: parseQuery(event.RawQueryString),
		headers:     make(map[string]string, len(event.Headers)),
	}

	for name, value := range event.Headers {
		req.headers[strings.ToLower(name)] = value
	}

	if event.Body != "" {
		body := event.Body

		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return nil, errors.Wrap(err, "unable to decode request body")
			}

			body = string(decoded)
		}

		req.Body = &body

		// A body that isn't valid JSON is not a failure: JSON reports
		// absence while Body keeps the raw text.
		if gjson.Valid(body) {
			parsed := gjson.Parse(body)
			req.json = &parsed
		}
	}

	return req, nil
}

// parseQuery splits an already-decoded query string into keys and values.
// The gateway decoded the string once, so no further decoding happens here.
func parseQuery(raw string) map[string][]string {
	params := map[string][]string{}

	if raw == "" {
		return params
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		params[key] = append(params[key], value)
	}

	return params
}

// Header returns the header value for name, comparing case-insensitively.
func (req *Request) Header(name string) string {
	return req.headers[strings.ToLower(name)]
}

// Headers returns the full header map with lower-cased names.
func (req *Request) Headers() map[string]string {
	return req.headers
}

// Query returns the first value for the named query parameter, or "".
func (req *Request) Query(name string) string {
	values := req.QueryParams[name]
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

// JSON returns the parsed request body. The second return is false when no
// body is present or the body isn't valid JSON.
func (req *Request) JSON() (gjson.Result, bool) {
	if req.json == nil {
		return gjson.Result{}, false
	}

	return *req.json, true
}

// JSONField queries one field of the JSON body by gjson path, for example
// "user.name". The zero Result is returned when no JSON body is present.
func (req *Request) JSONField(path string) gjson.Result {
	if req.json == nil {
		return gjson.Result{}
	}

	return req.json.Get(path)
}

// Bind unmarshals the JSON body into v.
func (req *Request) Bind(v interface{}) error {
	if req.Body == nil {
		return errors.New("no request body to bind")
	}

	if err := json.Unmarshal([]byte(*req.Body), v); err != nil {
		return errors.Wrap(err, "failed binding request body")
	}

	return nil
}
