package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartBody builds a multipart payload with a single "file" part
// carrying an explicit content type.
func multipartBody(t *testing.T, fieldName, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		`form-data; name="`+fieldName+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func (env *testEnv) upload(t *testing.T, token, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, formContentType := multipartBody(t, "file", filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	req.Header.Set("Content-Type", formContentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores an allowed file", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		rec := env.upload(t, token, "report.pdf", "application/pdf", []byte("%PDF-1.7"))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody[UploadResponse](t, rec)
		assert.Regexp(t, regexp.MustCompile(`^file-\d+-\d+\.pdf$`), body.ImagePath)
		assert.Equal(t, "File uploaded successfully", body.Message)
	})

	t.Run("rejects disallowed media type with 415", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		rec := env.upload(t, token, "payload.exe", "application/octet-stream", []byte{0x4d, 0x5a})
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("rejects oversized file with 413", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		huge := bytes.Repeat([]byte("x"), 6*1024*1024)
		rec := env.upload(t, token, "huge.png", "image/png", huge)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("missing file part is 400", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		token := env.seedUser(t, "alice")

		body, formContentType := multipartBody(t, "attachment", "report.pdf", "application/pdf", []byte("data"))
		req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
		req.Header.Set("Content-Type", formContentType)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.upload(t, "", "report.pdf", "application/pdf", []byte("%PDF-1.7"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
