package utils

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/nfnt/resize"
)

var ErrUnsupportedImageFormat = errors.New("unsupported image format")

// ResizeImage scales img down to fit inside maxWidth x maxHeight keeping the
// aspect ratio. Images that already fit are returned unchanged.
func ResizeImage(img image.Image, maxWidth, maxHeight uint) image.Image {
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}

// GenerateThumbnail decodes r and returns the encoded thumbnail bytes in the
// same format as the source. Formats without an encoder fall back to JPEG.
func GenerateThumbnail(r io.Reader) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	thumb := ResizeImage(img, ThumbnailMaxWidth, ThumbnailMaxHeight)

	buf := &bytes.Buffer{}
	if err := EncodeImage(thumb, format, buf, ThumbnailQuality); err != nil {
		if !errors.Is(err, ErrUnsupportedImageFormat) {
			return nil, "", err
		}
		buf.Reset()
		format = "jpeg"
		if err := EncodeImage(thumb, format, buf, ThumbnailQuality); err != nil {
			return nil, "", err
		}
	}

	return buf.Bytes(), format, nil
}

// EncodeImage writes img to writer in the named format. Quality only applies
// to JPEG.
func EncodeImage(img image.Image, format string, writer io.Writer, quality int) error {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	case "png":
		return png.Encode(writer, img)
	case "gif":
		return gif.Encode(writer, img, nil)
	default:
		return ErrUnsupportedImageFormat
	}
}
