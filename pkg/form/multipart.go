package form

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jaxron/axoform/pkg/client/errors"
)

// MultipartBuilder assembles a multipart/form-data body incrementally.
// Field parts carry only a Content-Disposition header; file parts add a
// Content-Type header when one is given. The part with isLast set closes
// the multipart framing, so it must be added exactly once, last.
type MultipartBuilder interface {
	AddField(name, value string)
	AddFilePart(name, fileName string, r io.Reader, contentType string, isLast bool) error
	ContentType() string
	Bytes() []byte
}

// quoteEscaper escapes header parameter values per RFC 2045.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Multipart is the default MultipartBuilder. It buffers the whole body in
// memory and frames parts with a random boundary.
type Multipart struct {
	boundary string
	buf      bytes.Buffer
	closed   bool
}

// NewMultipart creates an empty multipart body with a fresh boundary.
func NewMultipart() *Multipart {
	return &Multipart{
		boundary: "axoform-" + uuid.NewString(),
		buf:      bytes.Buffer{},
		closed:   false,
	}
}

// AddField appends a form field part.
func (m *Multipart) AddField(name, value string) {
	m.openPart()
	fmt.Fprintf(&m.buf, "Content-Disposition: form-data; name=\"%s\"\r\n\r\n", quoteEscaper.Replace(name))
	m.buf.WriteString(value)
	m.buf.WriteString("\r\n")
}

// AddFilePart appends a file part, consuming r. An empty contentType omits
// the Content-Type header. When isLast is set, the terminal boundary is
// written and the body is complete.
func (m *Multipart) AddFilePart(name, fileName string, r io.Reader, contentType string, isLast bool) error {
	m.openPart()
	fmt.Fprintf(&m.buf, "Content-Disposition: form-data; name=\"%s\"; filename=\"%s\"\r\n",
		quoteEscaper.Replace(name), quoteEscaper.Replace(fileName))
	if contentType != "" {
		fmt.Fprintf(&m.buf, "Content-Type: %s\r\n", contentType)
	}
	m.buf.WriteString("\r\n")

	if _, err := io.Copy(&m.buf, r); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrMultipartWrite, err)
	}
	m.buf.WriteString("\r\n")

	if isLast {
		m.close()
	}
	return nil
}

// ContentType returns the Content-Type header value for the body, including
// the boundary.
func (m *Multipart) ContentType() string {
	return "multipart/form-data; boundary=" + m.boundary
}

// Bytes returns the assembled body, closing the framing if no file part did.
func (m *Multipart) Bytes() []byte {
	m.close()
	return m.buf.Bytes()
}

func (m *Multipart) openPart() {
	m.buf.WriteString("--")
	m.buf.WriteString(m.boundary)
	m.buf.WriteString("\r\n")
}

func (m *Multipart) close() {
	if m.closed {
		return
	}
	m.buf.WriteString("--")
	m.buf.WriteString(m.boundary)
	m.buf.WriteString("--\r\n")
	m.closed = true
}
