//go:build !noheif

package imaging

import (
	"bytes"
	"image"

	"github.com/jdeng/goheif"
)

func decodeHEIC(data []byte) (image.Image, error) {
	return goheif.Decode(bytes.NewReader(data))
}

func extractHEICExif(data []byte) []byte {
	payload, err := goheif.ExtractExif(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return payload
}
