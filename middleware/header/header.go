// Package header provides middleware that applies default headers to
// outgoing requests.
package header

import (
	"context"
	"net/http"

	"github.com/jaxron/axoform/pkg/client/logger"
	"github.com/jaxron/axoform/pkg/client/middleware"
)

// HeaderMiddleware adds headers to HTTP requests.
type HeaderMiddleware struct {
	headers http.Header
	logger  logger.Logger
}

// New creates a new HeaderMiddleware instance.
func New(headers http.Header) *HeaderMiddleware {
	return &HeaderMiddleware{
		headers: headers,
		logger:  &logger.NoOpLogger{},
	}
}

// Process applies headers to the request before passing it to the next middleware.
func (m *HeaderMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	for key, values := range m.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	m.logger.WithFields(logger.Int("len_headers", len(m.headers))).Debug("Applied default headers")
	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *HeaderMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}
