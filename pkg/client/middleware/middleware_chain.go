package middleware

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"sort"

	"github.com/jaxron/axoform/pkg/client/errors"
	"github.com/jaxron/axoform/pkg/client/logger"
)

// chainEntry pairs a middleware with its priority in the chain.
type chainEntry struct {
	priority   int
	middleware Middleware
}

// Chain represents a chain of middleware ordered by descending priority.
type Chain struct {
	entries []chainEntry
	logger  logger.Logger
}

// NewChain creates a new middleware chain.
func NewChain(logger logger.Logger) *Chain {
	return &Chain{
		entries: nil,
		logger:  logger,
	}
}

// Len returns the number of middlewares in the chain.
func (c *Chain) Len() int {
	return len(c.entries)
}

// Then adds middleware to the chain with the given priority, replacing any
// existing middleware of the same type. Higher priorities run earlier.
func (c *Chain) Then(priority int, m Middleware) {
	m.SetLogger(c.logger)

	newType := reflect.TypeOf(m)
	for i, e := range c.entries {
		if reflect.TypeOf(e.middleware) == newType {
			c.entries[i] = chainEntry{priority: priority, middleware: m}
			c.sortByPriority()
			return
		}
	}

	c.entries = append(c.entries, chainEntry{priority: priority, middleware: m})
	c.sortByPriority()
}

func (c *Chain) sortByPriority() {
	sort.SliceStable(c.entries, func(i, j int) bool {
		return c.entries[i].priority > c.entries[j].priority
	})
}

// Process runs the request through all middleware in the chain.
func (c *Chain) Process(ctx context.Context, httpClient *http.Client, req *http.Request) (*http.Response, error) {
	// If no middlewares are defined, perform the request immediately
	if len(c.entries) == 0 {
		return c.performRequest(ctx, httpClient, req)
	}

	c.logMiddlewareChain()
	return c.processMiddleware(ctx, httpClient, req, 0)
}

// logMiddlewareChain logs the available middleware in the chain.
func (c *Chain) logMiddlewareChain() {
	for i, e := range c.entries {
		c.logger.WithFields(
			logger.Int("index", i),
			logger.Int("priority", e.priority),
			logger.String("type", reflect.TypeOf(e.middleware).String()),
		).Debug("Middleware in chain")
	}
}

// processMiddleware recursively applies each middleware in the chain.
func (c *Chain) processMiddleware(ctx context.Context, httpClient *http.Client, req *http.Request, index int) (*http.Response, error) {
	// If we've reached the end of the middleware chain, perform the request
	if index == len(c.entries) {
		return c.performRequest(ctx, httpClient, req)
	}

	// Otherwise, apply the middleware and continue
	return c.entries[index].middleware.Process(ctx, httpClient, req, func(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
		return c.processMiddleware(ctx, client, req, index+1)
	})
}

// performRequest executes the actual HTTP request.
func (c *Chain) performRequest(ctx context.Context, httpClient *http.Client, req *http.Request) (*http.Response, error) {
	// Log the request details
	c.logger.WithFields(
		logger.String("method", req.Method),
		logger.String("url", req.URL.String()),
		logger.Int("len_headers", len(req.Header)),
	).Debug("Request")

	// Send the request
	resp, err := httpClient.Do(req.WithContext(ctx))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", errors.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrNetwork, err)
	}

	// Check for non-ok status codes
	if resp.StatusCode != http.StatusOK {
		return resp, fmt.Errorf("%w: %d", errors.ErrBadStatus, resp.StatusCode)
	}

	// Log the response details
	c.logger.WithFields(
		logger.Int("status", resp.StatusCode),
		logger.Int("len_headers", len(resp.Header)),
	).Debug("Response")

	return resp, nil
}

// SetLogger updates the logger for all middleware in the chain.
func (c *Chain) SetLogger(l logger.Logger) {
	for _, e := range c.entries {
		e.middleware.SetLogger(l)
	}
	c.logger = l
}
