package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// portalClient drives the portal over HTTP with a cookie jar, the way a
// browser would.
type portalClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newPortalClient(t *testing.T, ts *TestServer) (*portalClient, func()) {
	t.Helper()
	server := httptest.NewServer(ts.Router)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &portalClient{
		t:    t,
		base: server.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, server.Close
}

func (c *portalClient) postJSON(path string, body interface{}) (*http.Response, map[string]interface{}) {
	c.t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(c.t, err)

	resp, err := c.client.Post(c.base+path, "application/json", bytes.NewReader(payload))
	require.NoError(c.t, err)
	return resp, decodeBody(c.t, resp)
}

func (c *portalClient) get(path string) (*http.Response, map[string]interface{}) {
	c.t.Helper()
	resp, err := c.client.Get(c.base + path)
	require.NoError(c.t, err)
	return resp, decodeBody(c.t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	// Redirect responses carry no JSON body.
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return body
}
