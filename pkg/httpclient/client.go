package httpclient

import (
	"io"
	"net/http"
	"time"
)

// Client is the HTTP transport the Monday.com client talks through. The
// GraphQL calls only need Do, but Post and Get are part of the contract so a
// single fake covers every outbound call in tests.
type Client interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient is the production transport.
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient returns a transport with a hard 30s ceiling per call.
// Board reads and column writes must never hold a webhook delivery or a
// detached sync run open indefinitely.
func NewStandardClient() Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *StandardHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}

func (c *StandardHTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
