package connection_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resolvekit/connection"
)

type countingReader struct {
	r     io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.r.Read(p)
}

func TestRequestBody(t *testing.T) {
	t.Run("reads and caches the body", func(t *testing.T) {
		counter := &countingReader{r: strings.NewReader("payload")}
		r := httptest.NewRequest(http.MethodPost, "/", counter)
		req := connection.NewRequest(r)

		body, err := req.Body()
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), body)

		reads := counter.reads
		body, err = req.Body()
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), body)
		assert.Equal(t, reads, counter.reads, "second call must hit the cache")
	})

	t.Run("nil body reads as empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Body = nil
		req := connection.NewRequest(r)

		body, err := req.Body()
		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("oversized body is rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
		req := connection.NewRequest(r, connection.WithMaxBodyBytes(4))

		_, err := req.Body()
		require.ErrorIs(t, err, connection.ErrBodyTooLarge)
	})

	t.Run("body at the exact limit passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("abcd"))
		req := connection.NewRequest(r, connection.WithMaxBodyBytes(4))

		body, err := req.Body()
		require.NoError(t, err)
		assert.Equal(t, []byte("abcd"), body)
	})
}

func TestRequestJSON(t *testing.T) {
	t.Run("parses once and caches", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id": 1}`))
		req := connection.NewRequest(r)

		v, err := req.JSON()
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": float64(1)}, v)

		again, err := req.JSON()
		require.NoError(t, err)
		assert.Equal(t, v, again)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))
		req := connection.NewRequest(r)

		_, err := req.JSON()
		require.ErrorIs(t, err, connection.ErrInvalidJSON)
	})
}

func TestRequestForm(t *testing.T) {
	t.Run("urlencoded preserves wire order", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("b=2&a=1&b=3"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req := connection.NewRequest(r)

		form, err := req.Form()
		require.NoError(t, err)
		assert.Equal(t, []connection.FormItem{
			{Key: "b", Value: "2"},
			{Key: "a", Value: "1"},
			{Key: "b", Value: "3"},
		}, form.Items())
	})

	t.Run("multipart preserves wire order and decodes files", func(t *testing.T) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("title", "report"))
		fw, err := w.CreateFormFile("doc", "report.txt")
		require.NoError(t, err)
		_, err = fw.Write([]byte("contents"))
		require.NoError(t, err)
		require.NoError(t, w.WriteField("note", "final"))
		require.NoError(t, w.Close())

		r := httptest.NewRequest(http.MethodPost, "/", &buf)
		r.Header.Set("Content-Type", w.FormDataContentType())
		req := connection.NewRequest(r)

		form, err := req.Form()
		require.NoError(t, err)
		items := form.Items()
		require.Len(t, items, 3)

		assert.Equal(t, "title", items[0].Key)
		assert.Equal(t, "report", items[0].Value)

		assert.Equal(t, "doc", items[1].Key)
		file, ok := items[1].Value.(*connection.UploadFile)
		require.True(t, ok)
		assert.Equal(t, "report.txt", file.Filename)
		assert.Equal(t, []byte("contents"), file.Data)

		assert.Equal(t, "note", items[2].Key)
		assert.Equal(t, "final", items[2].Value)
	})

	t.Run("missing content type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		req := connection.NewRequest(r)

		_, err := req.Form()
		require.ErrorIs(t, err, connection.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1"))
		r.Header.Set("Content-Type", "text/plain")
		req := connection.NewRequest(r)

		_, err := req.Form()
		require.ErrorIs(t, err, connection.ErrUnsupportedMediaType)
	})
}

func TestRequestPathParams(t *testing.T) {
	t.Run("lifted from the chi route context", func(t *testing.T) {
		router := chi.NewRouter()
		var params map[string]string
		router.Get("/posts/{post_id}", func(w http.ResponseWriter, r *http.Request) {
			params = connection.NewRequest(r).PathParams()
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/42", nil))
		assert.Equal(t, map[string]string{"post_id": "42"}, params)
	})

	t.Run("empty without a router", func(t *testing.T) {
		req := connection.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, req.PathParams())
	})

	t.Run("explicit override", func(t *testing.T) {
		req := connection.NewRequest(httptest.NewRequest(http.MethodGet, "/", nil),
			connection.WithPathParams(map[string]string{"id": "7"}))
		assert.Equal(t, map[string]string{"id": "7"}, req.PathParams())
	})
}

func TestRequestAccessors(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/posts?limit=10", nil)
	r.Header.Set("X-Request-ID", "req-1")
	r.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	req := connection.NewRequest(r)

	assert.Equal(t, http.MethodPut, req.Method())
	assert.Equal(t, []byte("limit=10"), req.RawQuery())
	assert.Equal(t, "req-1", req.Headers().Get("X-Request-ID"))
	assert.Equal(t, map[string]string{"session": "abc"}, req.Cookies())
	assert.Same(t, r, req.Unwrap())
	assert.NotNil(t, req.Context())
}
