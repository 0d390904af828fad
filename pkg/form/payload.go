package form

import (
	"bytes"
	"io"
	"strings"

	"github.com/jaxron/axoform/pkg/client/logger"
)

// Payload is a rendered request body ready to be attached to an
// http.Request.
type Payload struct {
	Body        io.Reader
	ContentType string
	Length      int64
}

// Payload renders the bag into a request body. Any registered file
// parameter selects the multipart path; otherwise the body is URL-encoded.
//
// The multipart path consumes the file readers, so a bag with file
// parameters renders a valid body only once. Mutating the bag afterwards
// has no effect on an already-produced Payload.
func (p *Params) Payload() (*Payload, error) {
	if !p.HasFiles() {
		body, err := p.Encode()
		if err != nil {
			return nil, err
		}
		return &Payload{
			Body:        strings.NewReader(body),
			ContentType: "application/x-www-form-urlencoded; charset=" + p.charset,
			Length:      int64(len(body)),
		}, nil
	}

	builder := p.newBuilder()

	for _, e := range p.scalars {
		builder.AddField(e.Key, e.Value)
	}

	for _, e := range p.arrays {
		for _, value := range e.Values {
			builder.AddField(e.Key, value)
		}
	}

	lastIndex := len(p.files) - 1
	for i, e := range p.files {
		fileName := e.FileName
		if fileName == "" {
			fileName = DefaultFileName
		}

		if err := builder.AddFilePart(e.Key, fileName, e.Reader, e.ContentType, i == lastIndex); err != nil {
			p.logger.WithFields(
				logger.String("key", e.Key),
				logger.String("file_name", fileName),
			).Error("Failed to write multipart file part")
			return nil, err
		}
	}

	body := builder.Bytes()
	return &Payload{
		Body:        bytes.NewReader(body),
		ContentType: builder.ContentType(),
		Length:      int64(len(body)),
	}, nil
}
