package form_test

import (
	"strings"
	"testing"

	"github.com/jaxron/axoform/pkg/client/errors"
	"github.com/jaxron/axoform/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("Insertion order with escaping", func(t *testing.T) {
		t.Parallel()

		p := form.New()
		p.Put("space", "hello world")
		p.Put("special", "!@#$%^&*()")
		p.PutList("tags", []string{"x", "y"})

		encoded, err := p.Encode()
		require.NoError(t, err)
		assert.Equal(t, "space=hello+world&special=%21%40%23%24%25%5E%26%2A%28%29&tags=x&tags=y", encoded)
	})

	t.Run("Arrays follow scalars", func(t *testing.T) {
		t.Parallel()

		p := form.New()
		p.PutList("tags", []string{"x"})
		p.Put("name", "james")

		encoded, err := p.Encode()
		require.NoError(t, err)
		assert.Equal(t, "name=james&tags=x", encoded)
	})

	t.Run("Empty bag", func(t *testing.T) {
		t.Parallel()

		encoded, err := form.New().Encode()
		require.NoError(t, err)
		assert.Equal(t, "", encoded)
	})

	t.Run("File entries are ignored", func(t *testing.T) {
		t.Parallel()

		p := form.New()
		p.Put("name", "james")
		p.PutReaderName("upload", strings.NewReader("x"), "skip.txt")

		encoded, err := p.Encode()
		require.NoError(t, err)
		assert.Equal(t, "name=james", encoded)
	})

	t.Run("ISO-8859-1 charset", func(t *testing.T) {
		t.Parallel()

		p := form.New(form.WithCharset("ISO-8859-1"))
		p.Put("city", "Zürich")

		encoded, err := p.Encode()
		require.NoError(t, err)
		assert.Equal(t, "city=Z%FCrich", encoded)
	})

	t.Run("Unknown charset", func(t *testing.T) {
		t.Parallel()

		p := form.New(form.WithCharset("NOT-A-CHARSET"))
		p.Put("key", "value")

		_, err := p.Encode()
		require.ErrorIs(t, err, errors.ErrUnsupportedEncoding)
	})

	t.Run("Charset names are case-insensitive for UTF-8", func(t *testing.T) {
		t.Parallel()

		p := form.New(form.WithCharset("utf-8"))
		p.Put("key", "value")

		encoded, err := p.Encode()
		require.NoError(t, err)
		assert.Equal(t, "key=value", encoded)
	})
}
