package form_test

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/jaxron/axoform/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseParts reads the assembled body back with the stdlib multipart reader.
func parseParts(t *testing.T, contentType string, body []byte) []*multipart.Part {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	var parts []*multipart.Part
	reader := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		// Drain before NextPart invalidates the part
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		part.Header.Set("X-Test-Content", string(content))
		parts = append(parts, part)
	}
	return parts
}

func TestMultipart(t *testing.T) {
	t.Parallel()

	t.Run("Fields and file parts", func(t *testing.T) {
		t.Parallel()

		m := form.NewMultipart()
		m.AddField("username", "james")
		m.AddField("tags", "x")
		err := m.AddFilePart("upload", "pic.jpg", strings.NewReader("image-bytes"), "image/jpeg", true)
		require.NoError(t, err)

		parts := parseParts(t, m.ContentType(), m.Bytes())
		require.Len(t, parts, 3)

		assert.Equal(t, "username", parts[0].FormName())
		assert.Equal(t, "james", parts[0].Header.Get("X-Test-Content"))
		assert.Equal(t, "", parts[0].FileName())
		assert.Equal(t, "", parts[0].Header.Get("Content-Type"))

		assert.Equal(t, "tags", parts[1].FormName())
		assert.Equal(t, "x", parts[1].Header.Get("X-Test-Content"))

		assert.Equal(t, "upload", parts[2].FormName())
		assert.Equal(t, "pic.jpg", parts[2].FileName())
		assert.Equal(t, "image/jpeg", parts[2].Header.Get("Content-Type"))
		assert.Equal(t, "image-bytes", parts[2].Header.Get("X-Test-Content"))
	})

	t.Run("File part without content type", func(t *testing.T) {
		t.Parallel()

		m := form.NewMultipart()
		err := m.AddFilePart("upload", "data.bin", strings.NewReader("bytes"), "", true)
		require.NoError(t, err)

		parts := parseParts(t, m.ContentType(), m.Bytes())
		require.Len(t, parts, 1)
		assert.Equal(t, "", parts[0].Header.Get("Content-Type"))
	})

	t.Run("Last part closes the framing", func(t *testing.T) {
		t.Parallel()

		m := form.NewMultipart()
		err := m.AddFilePart("upload", "a.txt", strings.NewReader("a"), "", true)
		require.NoError(t, err)

		_, params, err := mime.ParseMediaType(m.ContentType())
		require.NoError(t, err)
		body := string(m.Bytes())

		terminal := "--" + params["boundary"] + "--\r\n"
		assert.True(t, strings.HasSuffix(body, terminal))
		assert.Equal(t, 1, strings.Count(body, terminal))
	})

	t.Run("Bytes closes a fields-only body", func(t *testing.T) {
		t.Parallel()

		m := form.NewMultipart()
		m.AddField("username", "james")

		parts := parseParts(t, m.ContentType(), m.Bytes())
		require.Len(t, parts, 1)
		assert.Equal(t, "username", parts[0].FormName())
	})

	t.Run("Quotes in names are escaped", func(t *testing.T) {
		t.Parallel()

		m := form.NewMultipart()
		err := m.AddFilePart("upload", `we"ird.txt`, strings.NewReader("x"), "", true)
		require.NoError(t, err)

		parts := parseParts(t, m.ContentType(), m.Bytes())
		require.Len(t, parts, 1)
		assert.Equal(t, `we"ird.txt`, parts[0].FileName())
	})

	t.Run("Boundaries are unique per body", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, form.NewMultipart().ContentType(), form.NewMultipart().ContentType())
	})
}
