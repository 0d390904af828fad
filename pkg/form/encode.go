package form

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jaxron/axoform/pkg/client/errors"
	"github.com/jaxron/axoform/pkg/client/logger"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Encode renders the scalar and expanded array entries as a URL-encoded
// body string, scalar entries first, in insertion order. Values are
// transformed to the configured charset before percent-escaping. It returns
// errors.ErrUnsupportedEncoding if the charset name is not a registered
// IANA charset.
func (p *Params) Encode() (string, error) {
	enc, err := charsetEncoding(p.charset)
	if err != nil {
		p.logger.WithFields(logger.String("charset", p.charset)).Error("Unsupported charset for form body")
		return "", err
	}

	var buf strings.Builder
	for _, pair := range p.pairs() {
		key, err := escape(pair.Key, enc)
		if err != nil {
			return "", err
		}
		value, err := escape(pair.Value, enc)
		if err != nil {
			return "", err
		}

		if buf.Len() > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(value)
	}
	return buf.String(), nil
}

// charsetEncoding resolves an IANA charset name. A nil encoding means the
// text is already in the target charset and needs no transformation.
func charsetEncoding(name string) (encoding.Encoding, error) {
	if strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8") {
		return nil, nil
	}

	enc, err := ianaindex.MIME.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", errors.ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

// escape transforms s to the target charset and percent-escapes the result.
func escape(s string, enc encoding.Encoding) (string, error) {
	if enc != nil {
		transformed, err := enc.NewEncoder().String(s)
		if err != nil {
			return "", fmt.Errorf("%w: %w", errors.ErrUnsupportedEncoding, err)
		}
		s = transformed
	}
	return url.QueryEscape(s), nil
}
