package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resolvekit/signature"
)

type updatePostRequest struct {
	PostID  string         `param:"post_id"`
	Limit   int            `query:"page_size" default:"25"`
	Token   string         `header:"X-API-Token" required:"true"`
	Session string         `cookie:"session"`
	Tags    []string       `param:"tags"`
	Query   map[string]any // reserved name derived from the Go field name
	Data    map[string]any `media:"multipart/form-data"`

	internal string
	Excluded string `param:"-"`
}

func TestFor(t *testing.T) {
	t.Run("derives fields from tags", func(t *testing.T) {
		model, err := signature.For[updatePostRequest]()
		require.NoError(t, err)

		fields := model.Fields()
		assert.Equal(t, []string{"post_id", "limit", "token", "session", "tags", "query", "data"}, fields.Names())

		limit, ok := fields.Get("limit")
		require.True(t, ok)
		assert.Equal(t, "page_size", limit.Extras.Query)
		assert.Equal(t, float64(25), limit.Default)
		assert.True(t, limit.HasDefault)

		token, ok := fields.Get("token")
		require.True(t, ok)
		assert.Equal(t, "X-API-Token", token.Extras.Header)
		assert.True(t, token.Extras.Required)

		session, ok := fields.Get("session")
		require.True(t, ok)
		assert.Equal(t, "session", session.Extras.Cookie)

		data, ok := fields.Get("data")
		require.True(t, ok)
		assert.Equal(t, signature.MediaTypeMultipart, data.Extras.MediaType)
	})

	t.Run("untagged fields use the lowercased Go name", func(t *testing.T) {
		model := signature.MustFor[updatePostRequest]()
		assert.True(t, model.Fields().Has("query"))
	})

	t.Run("slice fields declare list shape, byte slices do not", func(t *testing.T) {
		model := signature.MustFor[struct {
			Tags []string
			Raw  []byte
			One  string
		}]()

		tags, _ := model.Fields().Get("tags")
		assert.Equal(t, signature.ShapeList, tags.Shape)
		raw, _ := model.Fields().Get("raw")
		assert.Equal(t, signature.ShapeSingleton, raw.Shape)
		one, _ := model.Fields().Get("one")
		assert.Equal(t, signature.ShapeSingleton, one.Shape)
	})

	t.Run("default literals decode as JSON with raw fallback", func(t *testing.T) {
		model := signature.MustFor[struct {
			Limit  int      `default:"10"`
			Active bool     `default:"true"`
			Lang   string   `default:"en"`
			Tags   []string `default:"[\"go\"]"`
		}]()

		limit, _ := model.Fields().Get("limit")
		assert.Equal(t, float64(10), limit.Default)
		active, _ := model.Fields().Get("active")
		assert.Equal(t, true, active.Default)
		lang, _ := model.Fields().Get("lang")
		assert.Equal(t, "en", lang.Default)
		tags, _ := model.Fields().Get("tags")
		assert.Equal(t, []any{"go"}, tags.Default)
	})

	t.Run("non-struct types are rejected", func(t *testing.T) {
		_, err := signature.For[int]()
		require.ErrorIs(t, err, signature.ErrNotStruct)
	})

	t.Run("duplicate declarations are rejected", func(t *testing.T) {
		_, err := signature.For[struct {
			A string `param:"id"`
			B string `param:"id"`
		}]()
		require.Error(t, err)

		var dup *signature.DuplicateFieldError
		require.ErrorAs(t, err, &dup)
	})
}

func TestStructModelDecode(t *testing.T) {
	t.Run("coerces weakly typed values", func(t *testing.T) {
		model := signature.MustFor[struct {
			Limit  int    `param:"limit"`
			Active bool   `param:"active"`
			Name   string `param:"name"`
		}]()

		got, err := model.Decode(map[string]any{
			"limit":  "25",
			"active": true,
			"name":   "post",
		})
		require.NoError(t, err)
		assert.Equal(t, 25, got.Limit)
		assert.True(t, got.Active)
		assert.Equal(t, "post", got.Name)
	})

	t.Run("nil values leave the zero value", func(t *testing.T) {
		model := signature.MustFor[struct {
			Limit int `param:"limit"`
		}]()

		got, err := model.Decode(map[string]any{"limit": nil})
		require.NoError(t, err)
		assert.Zero(t, got.Limit)
	})

	t.Run("uncoercible values fail validation", func(t *testing.T) {
		model := signature.MustFor[struct {
			Limit int `param:"limit"`
		}]()

		_, err := model.Decode(map[string]any{"limit": "not-a-number"})
		require.ErrorIs(t, err, signature.ErrValidation)
	})

	t.Run("nested body mappings decode into typed structs", func(t *testing.T) {
		type payload struct {
			Title string `param:"title"`
			Views int    `param:"views"`
		}
		model := signature.MustFor[struct {
			Data payload `param:"data"`
		}]()

		got, err := model.Decode(map[string]any{
			"data": map[string]any{"title": "hello", "views": float64(3)},
		})
		require.NoError(t, err)
		assert.Equal(t, payload{Title: "hello", Views: 3}, got.Data)
	})
}

func TestStructModelConstruct(t *testing.T) {
	model := signature.MustFor[struct {
		Limit int    `param:"limit"`
		Name  string `param:"name"`
	}]()

	got, err := model.Construct(map[string]any{"limit": "25", "name": "post"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"limit": 25, "name": "post"}, got)

	_, err = model.Construct(map[string]any{"limit": "nope"})
	require.ErrorIs(t, err, signature.ErrValidation)
}
