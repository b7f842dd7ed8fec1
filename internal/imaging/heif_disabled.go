//go:build noheif

package imaging

import (
	"errors"
	"image"
)

func decodeHEIC([]byte) (image.Image, error) {
	return nil, errors.New("built without HEIC support")
}

func extractHEICExif([]byte) []byte {
	return nil
}
