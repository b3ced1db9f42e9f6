package signature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/resolvekit/signature"
)

func TestNewFieldSet(t *testing.T) {
	t.Run("preserves declaration order", func(t *testing.T) {
		fs, err := signature.NewFieldSet(
			signature.Field{Name: "c"},
			signature.Field{Name: "a"},
			signature.Field{Name: "b"},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, fs.Names())
		assert.Equal(t, 3, fs.Len())
	})

	t.Run("rejects empty field names", func(t *testing.T) {
		_, err := signature.NewFieldSet(signature.Field{Name: ""})
		require.ErrorIs(t, err, signature.ErrEmptyFieldName)
	})

	t.Run("rejects duplicate field names", func(t *testing.T) {
		_, err := signature.NewFieldSet(
			signature.Field{Name: "id"},
			signature.Field{Name: "id"},
		)
		require.Error(t, err)

		var dup *signature.DuplicateFieldError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "id", dup.Name)
	})

	t.Run("lookup", func(t *testing.T) {
		fs := signature.MustFieldSet(signature.Field{Name: "id", Extras: signature.Extras{Required: true}})

		f, ok := fs.Get("id")
		require.True(t, ok)
		assert.True(t, f.Extras.Required)
		assert.True(t, fs.Has("id"))
		assert.False(t, fs.Has("missing"))
	})
}

func TestFieldSetWithout(t *testing.T) {
	fs := signature.MustFieldSet(
		signature.Field{Name: "a"},
		signature.Field{Name: "b"},
		signature.Field{Name: "c"},
	)

	trimmed := fs.Without("b")
	assert.Equal(t, []string{"a", "c"}, trimmed.Names())

	// The original is untouched.
	assert.Equal(t, []string{"a", "b", "c"}, fs.Names())
}

func TestFieldDefaults(t *testing.T) {
	t.Run("no default", func(t *testing.T) {
		f := signature.Field{Name: "x"}
		assert.Nil(t, f.DefaultValue())
		assert.False(t, f.UsableDefault())
	})

	t.Run("declared default", func(t *testing.T) {
		f := signature.Field{Name: "x", Default: 25, HasDefault: true}
		assert.Equal(t, 25, f.DefaultValue())
		assert.True(t, f.UsableDefault())
	})

	t.Run("zero-valued default is not usable for required fields", func(t *testing.T) {
		f := signature.Field{Name: "x", Default: "", HasDefault: true}
		assert.Equal(t, "", f.DefaultValue())
		assert.False(t, f.UsableDefault())
	})

	t.Run("nil default is not usable", func(t *testing.T) {
		f := signature.Field{Name: "x", Default: nil, HasDefault: true}
		assert.False(t, f.UsableDefault())
	})
}
