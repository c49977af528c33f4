// Package media validates and stores uploaded movie images.  Files live on
// local disk under a configurable root and are served statically; only a
// relative path is persisted in the database.
package media

import (
	"bytes"
	"errors"
	"image"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
)

// ErrNotImage indicates an upload payload that does not decode as a
// supported raster image format.
var ErrNotImage = errors.New("payload is not a decodable image")

// DecodeCheck verifies that data decodes as JPEG, PNG or GIF and returns the
// file extension to store it under.  The decoded pixels are discarded; only
// decodability matters here, no size or dimension constraints are applied.
func DecodeCheck(data []byte) (string, error) {
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotImage
	}
	switch format {
	case "jpeg":
		return ".jpg", nil
	case "png":
		return ".png", nil
	case "gif":
		return ".gif", nil
	}
	return "", ErrNotImage
}
