package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jaxron/axoform/pkg/client/errors"
	"github.com/jaxron/axoform/pkg/form"
)

// Request helps build requests using method chaining.
type Request struct {
	client        *Client
	marshalFunc   MarshalFunc
	unmarshalFunc UnmarshalFunc
	result        interface{}
	method        string
	url           string
	body          []byte
	marshalBody   interface{}
	form          *form.Params
	header        http.Header
	query         *form.Params
}

// NewRequest creates a new Request with default options.
func (c *Client) NewRequest() *Request {
	return &Request{
		client:        c,
		marshalFunc:   c.marshalFunc,
		unmarshalFunc: c.unmarshalFunc,
		result:        nil,
		method:        "",
		url:           "",
		body:          nil,
		marshalBody:   nil,
		form:          nil,
		header:        make(http.Header),
		query:         form.New(),
	}
}

// Method sets the HTTP method for the request.
func (rb *Request) Method(method string) *Request {
	rb.method = method
	return rb
}

// URL sets the URL for the request.
func (rb *Request) URL(url string) *Request {
	rb.url = url
	return rb
}

// MarshalWith sets the marshal function for the request body.
func (rb *Request) MarshalWith(fn MarshalFunc) *Request {
	rb.marshalFunc = fn
	return rb
}

// UnmarshalWith sets the unmarshal function for the response.
func (rb *Request) UnmarshalWith(fn UnmarshalFunc) *Request {
	rb.unmarshalFunc = fn
	return rb
}

// Result sets the result to unmarshal the response into.
func (rb *Request) Result(result interface{}) *Request {
	rb.result = result
	return rb
}

// Body sets the body of the request.
func (rb *Request) Body(body []byte) *Request {
	rb.body = body
	return rb
}

// MarshalBody sets the body of the request after marshaling the provided struct.
func (rb *Request) MarshalBody(body interface{}) *Request {
	rb.marshalBody = body
	return rb
}

// Form sets the request body from a parameter bag. The bag decides between
// a URL-encoded and a multipart body, and the matching Content-Type header
// is set on the built request.
func (rb *Request) Form(params *form.Params) *Request {
	rb.form = params
	return rb
}

// Query adds a query parameter to the request.
func (rb *Request) Query(key, value string) *Request {
	rb.query.Put(key, value)
	return rb
}

// QueryList adds an ordered group of query values under the same key.
func (rb *Request) QueryList(key string, values []string) *Request {
	rb.query.PutList(key, values)
	return rb
}

// Header adds a header to the request.
func (rb *Request) Header(key, value string) *Request {
	rb.header.Set(key, value)
	return rb
}

// Build returns the final http.Request for execution.
func (rb *Request) Build(ctx context.Context) (*http.Request, error) {
	// Ensure at most one body source is set
	sources := 0
	for _, set := range []bool{rb.body != nil, rb.marshalBody != nil, rb.form != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, errors.ErrBodyFormConflict
	}

	var bodyReader io.Reader
	var payload *form.Payload

	// Marshal the body if provided
	if rb.marshalBody != nil {
		marshaledBody, err := rb.marshalFunc(rb.marshalBody)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrRequestCreation, err)
		}
		bodyReader = bytes.NewReader(marshaledBody)
	}

	// Use the body if provided
	if rb.body != nil {
		bodyReader = bytes.NewReader(rb.body)
	}

	// Render the form if provided
	if rb.form != nil {
		rendered, err := rb.form.Payload()
		if err != nil {
			return nil, err
		}
		payload = rendered
		bodyReader = rendered.Body
	}

	// Create a new HTTP request
	req, err := http.NewRequestWithContext(ctx, rb.method, rb.url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRequestCreation, err)
	}

	// Set the query parameters
	rawQuery, err := rb.query.Encode()
	if err != nil {
		return nil, err
	}
	if rawQuery != "" {
		req.URL.RawQuery = rawQuery
	}

	// Set the headers
	for key, values := range rb.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// The rendered form decides the content type unless one was set explicitly
	if payload != nil {
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", payload.ContentType)
		}
		req.ContentLength = payload.Length
	}

	return req, nil
}

// Do executes the request and returns the raw http.Response.
func (rb *Request) Do(ctx context.Context) (*http.Response, error) {
	// Build the request
	req, err := rb.Build(ctx)
	if err != nil {
		return nil, err
	}

	// Execute the request
	resp, err := rb.client.Do(ctx, req)
	if err != nil {
		return resp, err
	}

	// If a result is set, unmarshal the response
	if rb.result != nil {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp, err
		}

		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewBuffer(body))

		if err = rb.unmarshalFunc(body, rb.result); err != nil {
			return resp, err
		}
	}

	return resp, nil
}
