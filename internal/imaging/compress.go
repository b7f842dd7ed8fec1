package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"mediapress/internal/fileutil"
)

// ErrUnsupported marks inputs the image codecs cannot handle; the dispatcher
// downgrades such files to a verbatim copy.
var ErrUnsupported = errors.New("unsupported image format")

// Settings controls the image codec.
type Settings struct {
	// MinDimension is the target for the smaller image dimension. Images whose
	// smaller dimension exceeds it are downscaled. Zero disables resizing.
	MinDimension int
	JPEGQuality  int
}

// Compress reads the image at srcPath and writes a recompressed rendition at
// tempPath, correcting the extension when the decoded format disagrees with
// the claimed one. It returns the final temp path actually written.
func Compress(srcPath, tempPath string, settings Settings) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", srcPath, err)
	}

	if fileutil.LowerExt(srcPath) == ".heic" {
		return compressHEIC(data, tempPath, settings)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUnsupported, err)
	}

	switch format {
	case "jpeg":
		return writeJPEG(img, data, tempPath, settings)
	case "png":
		return writePNG(img, tempPath, settings)
	default:
		return "", fmt.Errorf("%w: decoder reported %q", ErrUnsupported, format)
	}
}

func writeJPEG(img image.Image, original []byte, tempPath string, settings Settings) (string, error) {
	exifPayload := exifPayloadFromJPEG(original)
	img = applyOrientation(img, orientationFrom(exifPayload))
	img = shrink(img, settings.MinDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: settings.JPEGQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	encoded := buf.Bytes()
	if exifPayload != nil {
		// Pixels are already rotated, so the carried-over tag must say "up".
		encoded = insertJPEGExif(encoded, clearOrientation(exifPayload))
	}

	finalPath := fileutil.ReplaceExt(tempPath, ".jpg")
	if err := os.WriteFile(finalPath, encoded, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", finalPath, err)
	}
	return finalPath, nil
}

func writePNG(img image.Image, tempPath string, settings Settings) (string, error) {
	img = shrink(img, settings.MinDimension)

	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	finalPath := fileutil.ReplaceExt(tempPath, ".png")
	if err := os.WriteFile(finalPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", finalPath, err)
	}
	return finalPath, nil
}

func compressHEIC(data []byte, tempPath string, settings Settings) (string, error) {
	img, err := decodeHEIC(data)
	if err != nil {
		return "", fmt.Errorf("%w: heic decode: %v", ErrUnsupported, err)
	}

	exifPayload := normalizeExifPayload(extractHEICExif(data))
	img = applyOrientation(img, orientationFrom(exifPayload))
	img = shrink(img, settings.MinDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: settings.JPEGQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	encoded := buf.Bytes()
	if exifPayload != nil {
		encoded = insertJPEGExif(encoded, clearOrientation(exifPayload))
	}

	finalPath := fileutil.ReplaceExt(tempPath, ".jpg")
	if err := os.WriteFile(finalPath, encoded, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", finalPath, err)
	}
	return finalPath, nil
}

// shrink downscales img so its smaller dimension equals minDimension,
// preserving aspect ratio. Images at or below the bound pass through.
func shrink(img image.Image, minDimension int) image.Image {
	if minDimension <= 0 {
		return img
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	smaller := width
	if height < smaller {
		smaller = height
	}
	if smaller <= minDimension {
		return img
	}
	scale := float64(minDimension) / float64(smaller)
	newWidth := uint(float64(width)*scale + 0.5)
	newHeight := uint(float64(height)*scale + 0.5)
	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
