// Package form collects request parameters and renders them into either a
// URL-encoded or a multipart/form-data request body.
package form

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/hashicorp/go-multierror"
	"github.com/jaxron/axoform/pkg/client/errors"
	"github.com/jaxron/axoform/pkg/client/logger"
)

// DefaultCharset is the charset used for URL-encoded bodies unless
// overridden with WithCharset.
const DefaultCharset = "UTF-8"

// DefaultFileName is used for file parts registered without a filename.
const DefaultFileName = "nofilename"

// scalarEntry is a single key/value string parameter.
type scalarEntry struct {
	Key   string
	Value string
}

// arrayEntry is one ordered group of values registered under a key.
// Several groups may accumulate under the same key; each group is
// expanded element-by-element at render time.
type arrayEntry struct {
	Key    string
	Values []string
}

// fileEntry is a readable stream destined for a multipart file part.
type fileEntry struct {
	Key         string
	Reader      io.Reader
	FileName    string
	ContentType string
}

// Params accumulates string, array and file parameters for a single request.
//
// Keys may repeat in every collection; insertion order is preserved and
// determines serialization order. Params is not safe for concurrent use.
//
// Readers handed to the PutReader family stay owned by the caller and are
// never closed by Params. Files opened by PutFile are owned by the bag and
// released by Close.
//
// For example:
//
//	params := form.New()
//	params.Put("username", "james")
//	params.Put("password", "123456")
//	_ = params.PutFile("profile_picture", "pic.jpg")
//	payload, err := params.Payload()
type Params struct {
	scalars []scalarEntry
	arrays  []arrayEntry
	files   []fileEntry
	owned   []io.Closer

	charset    string
	newBuilder func() MultipartBuilder
	logger     logger.Logger
}

// Option is a function type that modifies the Params configuration.
type Option func(*Params)

// WithCharset sets the charset used when rendering the URL-encoded body.
// The name must be a registered IANA charset name such as "ISO-8859-1".
func WithCharset(name string) Option {
	return func(p *Params) {
		p.charset = name
	}
}

// WithLogger sets the logger used to report render failures.
func WithLogger(l logger.Logger) Option {
	return func(p *Params) {
		p.logger = l
	}
}

// WithMultipartBuilder sets the factory for the multipart builder used by
// Payload. Mainly useful for tests and custom framing.
func WithMultipartBuilder(fn func() MultipartBuilder) Option {
	return func(p *Params) {
		p.newBuilder = fn
	}
}

// New creates an empty Params instance.
func New(opts ...Option) *Params {
	p := &Params{
		scalars:    nil,
		arrays:     nil,
		files:      nil,
		owned:      nil,
		charset:    DefaultCharset,
		newBuilder: func() MultipartBuilder { return NewMultipart() },
		logger:     &logger.NoOpLogger{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewFromMap creates a Params instance containing the key/value string
// pairs from the given map, added in sorted key order.
func NewFromMap(source map[string]string, opts ...Option) *Params {
	p := New(opts...)

	keys := make([]string, 0, len(source))
	for k := range source {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p.Put(k, source[k])
	}
	return p
}

// NewPair creates a Params instance with a single initial key/value pair.
func NewPair(key, value string, opts ...Option) *Params {
	p := New(opts...)
	p.Put(key, value)
	return p
}

// NewPairs creates a Params instance from a flat sequence of alternating
// keys and values. Each item is converted to its string representation,
// including nil. It returns errors.ErrOddKeyValues if the number of
// arguments is odd.
func NewPairs(keysAndValues ...any) (*Params, error) {
	if len(keysAndValues)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d arguments", errors.ErrOddKeyValues, len(keysAndValues))
	}

	p := New()
	for i := 0; i < len(keysAndValues); i += 2 {
		p.Put(fmt.Sprint(keysAndValues[i]), fmt.Sprint(keysAndValues[i+1]))
	}
	return p, nil
}

// NewFromStruct creates a Params instance from the url-tagged fields of a
// struct, in sorted key order.
func NewFromStruct(v any, opts ...Option) (*Params, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRequestCreation, err)
	}

	p := New(opts...)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, value := range values[k] {
			p.Put(k, value)
		}
	}
	return p, nil
}

// Put adds a key/value string pair. Pairs with an empty key or value are
// silently skipped.
func (p *Params) Put(key, value string) {
	if key != "" && value != "" {
		p.scalars = append(p.scalars, scalarEntry{Key: key, Value: value})
	}
}

// PutList registers an entire ordered list of values under key as one array
// entry. Repeated PutList calls under the same key accumulate; each list is
// expanded element-by-element at render time. Nil lists and empty keys are
// silently skipped.
func (p *Params) PutList(key string, values []string) {
	if key != "" && values != nil {
		p.arrays = append(p.arrays, arrayEntry{Key: key, Values: values})
	}
}

// PutFile opens the named file for reading and adds it as a file parameter,
// using the file's base name as the upload filename. The opened handle is
// owned by the bag and released by Close. It returns errors.ErrFileNotFound
// if the file cannot be opened.
func (p *Params) PutFile(key, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFileNotFound, err)
	}

	p.owned = append(p.owned, file)
	p.PutReaderName(key, file, filepath.Base(path))
	return nil
}

// PutReader adds a readable stream as a file parameter with no filename and
// no content type.
func (p *Params) PutReader(key string, r io.Reader) {
	p.PutReaderNameType(key, r, "", "")
}

// PutReaderName adds a readable stream as a file parameter with no content
// type.
func (p *Params) PutReaderName(key string, r io.Reader, fileName string) {
	p.PutReaderNameType(key, r, fileName, "")
}

// PutReaderNameType adds a fully-specified file parameter, eg. with content
// type "application/json". Entries with an empty key or a nil reader are
// silently skipped.
func (p *Params) PutReaderNameType(key string, r io.Reader, fileName, contentType string) {
	if key != "" && r != nil {
		p.files = append(p.files, fileEntry{
			Key:         key,
			Reader:      r,
			FileName:    fileName,
			ContentType: contentType,
		})
	}
}

// Remove deletes every scalar, array and file entry registered under key.
func (p *Params) Remove(key string) {
	p.scalars = deleteEntries(p.scalars, func(e scalarEntry) bool { return e.Key == key })
	p.arrays = deleteEntries(p.arrays, func(e arrayEntry) bool { return e.Key == key })
	p.files = deleteEntries(p.files, func(e fileEntry) bool { return e.Key == key })
}

// RemoveValue deletes the entries whose key and value both match. Only
// scalar entries can match a string value; array groups and file streams
// are never equal to one.
func (p *Params) RemoveValue(key, value string) {
	p.scalars = deleteEntries(p.scalars, func(e scalarEntry) bool {
		return e.Key == key && e.Value == value
	})
}

// Get retrieves the first scalar value associated with the given key.
// If there are no values associated with the key, Get returns the empty
// string.
func (p *Params) Get(key string) string {
	for _, e := range p.scalars {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}

// Len returns the total number of entries in the bag. Each array entry
// counts once regardless of how many values it holds.
func (p *Params) Len() int {
	return len(p.scalars) + len(p.arrays) + len(p.files)
}

// HasFiles reports whether any file parameters are registered. When it
// returns true, Payload renders a multipart body.
func (p *Params) HasFiles() bool {
	return len(p.files) > 0
}

// Close releases the file handles opened by PutFile, aggregating any close
// failures. Readers added via the PutReader family are left untouched.
func (p *Params) Close() error {
	var result *multierror.Error
	for _, c := range p.owned {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	p.owned = nil
	return result.ErrorOrNil()
}

// String returns a diagnostic representation of the bag: scalar entries as
// key=value, file entries as key=FILE, array entries expanded element-by-
// element, all joined by '&'. No URL-encoding is applied.
func (p *Params) String() string {
	var result strings.Builder

	for _, e := range p.scalars {
		if result.Len() > 0 {
			result.WriteByte('&')
		}
		result.WriteString(e.Key)
		result.WriteByte('=')
		result.WriteString(e.Value)
	}

	for _, e := range p.files {
		if result.Len() > 0 {
			result.WriteByte('&')
		}
		result.WriteString(e.Key)
		result.WriteString("=FILE")
	}

	for _, e := range p.arrays {
		for _, value := range e.Values {
			if result.Len() > 0 {
				result.WriteByte('&')
			}
			result.WriteString(e.Key)
			result.WriteByte('=')
			result.WriteString(value)
		}
	}

	return result.String()
}

// pairs flattens scalar entries followed by expanded array entries into one
// ordered name/value sequence for URL encoding.
func (p *Params) pairs() []scalarEntry {
	list := make([]scalarEntry, 0, len(p.scalars))
	list = append(list, p.scalars...)

	for _, e := range p.arrays {
		for _, value := range e.Values {
			list = append(list, scalarEntry{Key: e.Key, Value: value})
		}
	}
	return list
}

func deleteEntries[E any](entries []E, match func(E) bool) []E {
	kept := entries[:0]
	for _, e := range entries {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	return kept
}
