package api

import (
	"context"
	"fmt"

	"github.com/RicardoYam/Meet/pkg/client"
	"github.com/RicardoYam/Meet/pkg/session"
	"github.com/go-resty/resty/v2"
)

// Client binds the blog REST API to a resty client
type Client struct {
	http *resty.Client
}

// NewClient wraps an already configured resty client
func NewClient(rc *resty.Client) *Client {
	return &Client{http: rc}
}

// Default returns a Client over the shared, config-driven HTTP client
func Default() *Client {
	return NewClient(client.GetClient())
}

// request starts an anonymous request bound to ctx
func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// authed starts a request carrying sess's Authorization header
func (c *Client) authed(ctx context.Context, sess *session.Session) *resty.Request {
	req := c.request(ctx)
	if sess != nil {
		req.SetHeader("Authorization", sess.Authorization())
	}
	return req
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, id)
}
