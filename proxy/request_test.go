package proxy

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequest_pathParams(t *testing.T) {
	req, err := newRequest(testEvent("GET", "/users/42"), map[string]string{"user_id": "42"})

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"user_id": "42"}, req.PathParams)
}

func TestNewRequest_nilParams(t *testing.T) {
	req, err := newRequest(testEvent("GET", "/users"), nil)

	assert.NoError(t, err)
	assert.NotNil(t, req.PathParams)
	assert.Empty(t, req.PathParams)
}

func TestNewRequest_queryParams(t *testing.T) {
	event := testEvent("GET", "/search")
	event.RawQueryString = "tag=a&tag=b&q=hi"

	req, err := newRequest(event, nil)

	assert.NoError(t, err)
	assert.Equal(t, map[string][]string{"tag": {"a", "b"}, "q": {"hi"}}, req.QueryParams)
	assert.Equal(t, "a", req.Query("tag"))
	assert.Equal(t, "", req.Query("missing"))
}

func TestNewRequest_queryParams_bareKey(t *testing.T) {
	event := testEvent("GET", "/search")
	event.RawQueryString = "flag&q=hi"

	req, err := newRequest(event, nil)

	assert.NoError(t, err)
	assert.Equal(t, []string{""}, req.QueryParams["flag"])
}

func TestNewRequest_queryParams_empty(t *testing.T) {
	req, err := newRequest(testEvent("GET", "/search"), nil)

	assert.NoError(t, err)
	assert.Empty(t, req.QueryParams)
}

func TestNewRequest_headersCaseInsensitive(t *testing.T) {
	event := testEvent("GET", "/")
	event.Headers = map[string]string{"Content-Type": "application/json", "X-Custom": "yes"}

	req, err := newRequest(event, nil)

	assert.NoError(t, err)
	assert.Equal(t, "application/json", req.Header("content-type"))
	assert.Equal(t, "yes", req.Header("X-CUSTOM"))
	assert.Equal(t, "application/json", req.Headers()["content-type"])
}

func TestNewRequest_noBody(t *testing.T) {
	req, err := newRequest(testEvent("GET", "/"), nil)

	assert.NoError(t, err)
	assert.Nil(t, req.Body)

	_, ok := req.JSON()
	assert.False(t, ok)
}

func TestNewRequest_jsonBody(t *testing.T) {
	event := testEvent("POST", "/items")
	event.Body = `{"name": "widget", "count": 3}`

	req, err := newRequest(event, nil)

	assert.NoError(t, err)
	assert.Equal(t, `{"name": "widget", "count": 3}`, *req.Body)

	body, ok := req.JSON()
	assert.True(t, ok)
	assert.Equal(t, "widget", body.Get("name").String())
	assert.Equal(t, int64(3), req.JSONField("count").Int())
}

func TestNewRequest_nonJSONBody(t *testing.T) {
	event := testEvent("POST", "/items")
	event.Body = "not json"

	req, err := newRequest(event, nil)

	assert.NoError(t, err)
	assert.Equal(t, "not json", *req.Body)

	_, ok := req.JSON()
	assert.False(t, ok)
	assert.False(t, req.JSONField("name").Exists())
}

func TestNewRequest_base64Body(t *testing.T) {
	event := testEvent("POST", "/items")
	event.Body = base64.StdEncoding.EncodeToString([]byte(`{"name":"widget"}`))
	event.IsBase64Encoded = true

	req, err := newRequest(event, nil)

	assert.NoError(t, err)
	assert.Equal(t, `{"name":"widget"}`, *req.Body)

	body, ok := req.JSON()
	assert.True(t, ok)
	assert.Equal(t, "widget", body.Get("name").String())
}

func TestNewRequest_base64Body_error(t *testing.T) {
	event := testEvent("POST", "/items")
	event.Body = "sefdfxsdf.d.dsd"
	event.IsBase64Encoded = true

	_, err := newRequest(event, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to decode request body")
}

func TestRequest_Bind(t *testing.T) {
	event := testEvent("POST", "/items")
	event.Body = `{"name": "widget", "count": 3}`

	req, err := newRequest(event, nil)
	assert.NoError(t, err)

	var item struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	assert.NoError(t, req.Bind(&item))
	assert.Equal(t, "widget", item.Name)
	assert.Equal(t, 3, item.Count)
}

func TestRequest_Bind_noBody(t *testing.T) {
	req, err := newRequest(testEvent("POST", "/items"), nil)
	assert.NoError(t, err)

	var item struct{}
	assert.Error(t, req.Bind(&item))
}

func TestRequest_Bind_invalidJSON(t *testing.T) {
	event := testEvent("POST", "/items")
	event.Body = "not json"

	req, err := newRequest(event, nil)
	assert.NoError(t, err)

	var item struct{}
	err = req.Bind(&item)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed binding request body")
}
