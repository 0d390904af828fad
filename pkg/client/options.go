package client

import (
	"net/http"
	"time"

	"github.com/jaxron/axoform/pkg/client/logger"
	"github.com/jaxron/axoform/pkg/client/middleware"
)

// MarshalFunc is a function type that matches standard marshal functions.
type MarshalFunc func(interface{}) ([]byte, error)

// UnmarshalFunc is a function type that matches standard unmarshal functions.
type UnmarshalFunc func([]byte, interface{}) error

// Option is a function type that modifies the Client configuration.
type Option func(*Client)

// WithMiddleware adds or updates the middleware for the Client with a
// specified priority. Higher priorities run earlier in the chain.
func WithMiddleware(priority int, m middleware.Middleware) Option {
	return func(c *Client) {
		c.middlewareChain.Then(priority, m)
	}
}

// WithTimeout sets the timeout for the Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTransport sets the transport for the Client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = transport
	}
}

// WithLogger sets the logger for the Client and its middleware.
func WithLogger(logger logger.Logger) Option {
	return func(c *Client) {
		c.middlewareChain.SetLogger(logger)
	}
}

// WithMarshalFunc sets the marshal function for the Client.
func WithMarshalFunc(fn MarshalFunc) Option {
	return func(c *Client) {
		c.marshalFunc = fn
	}
}

// WithUnmarshalFunc sets the unmarshal function for the Client.
func WithUnmarshalFunc(fn UnmarshalFunc) Option {
	return func(c *Client) {
		c.unmarshalFunc = fn
	}
}
