package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Encode writes img in the format named by the extension of name.
func Encode(w io.Writer, img image.Image, name string) error {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
}
