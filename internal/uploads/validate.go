package uploads

import (
	"errors"
	"fmt"
	"regexp"
)

// MaxFileSize is the upload ceiling, 5 MB.
const MaxFileSize = 5 << 20

var (
	ErrTooLarge    = errors.New("file exceeds the 5 MB upload limit")
	ErrBadType     = errors.New("file type is not an allowed image format")
	ErrBadFolder   = errors.New("invalid upload folder name")
	ErrEmptyUpload = errors.New("empty upload")
)

// allowedTypes maps the accepted image content types to the extension
// stored objects get.
var allowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
	"image/x-icon":  ".ico",
}

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Validate checks the declared content type and size against the
// allow-list. The error distinguishes type from size so the caller can
// report the specific reason.
func Validate(contentType string, size int64) error {
	if size <= 0 {
		return ErrEmptyUpload
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	if _, ok := allowedTypes[contentType]; !ok {
		return fmt.Errorf("%w: %s", ErrBadType, contentType)
	}
	return nil
}

// ValidateFolder restricts folder names to flat lowercase slugs, so an
// upload cannot escape into arbitrary object keys.
func ValidateFolder(folder string) error {
	if !folderPattern.MatchString(folder) {
		return fmt.Errorf("%w: %q", ErrBadFolder, folder)
	}
	return nil
}

func extFor(contentType string) string {
	return allowedTypes[contentType]
}
