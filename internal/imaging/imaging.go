package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the supported input formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when the image data is not in a
// recognized format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Info describes a probed image.
type Info struct {
	// Format is the registered decoder name (png, jpeg, gif, webp, bmp, tiff).
	Format string

	// MIMEType is the MIME type matching Format, as required by the
	// model API's inline data.
	MIMEType string

	// Width and Height are the pixel dimensions.
	Width  int
	Height int
}

// mimeTypes maps decoder format names to MIME types.
var mimeTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// imageExtensions lists file extensions considered image inputs during
// batch directory enumeration.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// ProbeBytes sniffs format and dimensions from raw image data.
func ProbeBytes(data []byte) (*Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	mimeType, ok := mimeTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return &Info{
		Format:   format,
		MIMEType: mimeType,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// Probe reads and sniffs an image file.
func Probe(path string) (*Info, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided image path is intentional
	if err != nil {
		return nil, err
	}
	return ProbeBytes(data)
}

// IsImageFile reports whether the file name has a supported image
// extension. Used to filter directory entries in batch mode.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// ExtensionForMIME returns the file extension for a MIME type returned
// by the synthesis call. Unknown types default to .png since that is
// what the API produces in practice.
func ExtensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
