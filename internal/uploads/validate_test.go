package uploads

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Run("accepts every allow-listed type", func(t *testing.T) {
		for _, ct := range []string{
			"image/jpeg", "image/png", "image/gif",
			"image/webp", "image/svg+xml", "image/x-icon",
		} {
			assert.NoError(t, Validate(ct, 1024), ct)
		}
	})

	t.Run("rejects disallowed types with the type reason", func(t *testing.T) {
		for _, ct := range []string{"application/pdf", "text/html", "image/tiff", ""} {
			assert.ErrorIs(t, Validate(ct, 1024), ErrBadType, ct)
		}
	})

	t.Run("rejects oversize with the size reason", func(t *testing.T) {
		assert.ErrorIs(t, Validate("image/png", MaxFileSize+1), ErrTooLarge)
	})

	t.Run("accepts exactly the ceiling", func(t *testing.T) {
		assert.NoError(t, Validate("image/png", MaxFileSize))
	})

	t.Run("rejects empty files", func(t *testing.T) {
		assert.ErrorIs(t, Validate("image/png", 0), ErrEmptyUpload)
	})
}

func TestValidateFolder(t *testing.T) {
	for _, ok := range []string{"media", "projects", "gallery-2024", "a"} {
		assert.NoError(t, ValidateFolder(ok), ok)
	}

	for _, bad := range []string{"", "../etc", "a/b", "UPPER", ".hidden", "-lead", "sp ace"} {
		assert.ErrorIs(t, ValidateFolder(bad), ErrBadFolder, bad)
	}
}

func TestExtFor(t *testing.T) {
	assert.Equal(t, ".jpg", extFor("image/jpeg"))
	assert.Equal(t, ".svg", extFor("image/svg+xml"))
	assert.Equal(t, "", extFor("application/pdf"))
}
