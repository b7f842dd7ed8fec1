package imaging

import (
	"bytes"
	"encoding/binary"

	"github.com/rwcarlsen/goexif/exif"
)

const orientationTag = 0x0112

var exifHeader = []byte("Exif\x00\x00")

// exifPayloadFromJPEG scans JPEG segments for the EXIF APP1 payload and
// returns the raw TIFF blob, or nil when the file carries none.
func exifPayloadFromJPEG(data []byte) []byte {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil
	}
	offset := 2
	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			return nil
		}
		marker := data[offset+1]
		// SOS onward is entropy-coded data; no more metadata segments.
		if marker == 0xDA {
			return nil
		}
		length := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if length < 2 || offset+2+length > len(data) {
			return nil
		}
		segment := data[offset+4 : offset+2+length]
		if marker == 0xE1 && bytes.HasPrefix(segment, exifHeader) {
			return segment[len(exifHeader):]
		}
		offset += 2 + length
	}
	return nil
}

// insertJPEGExif places the TIFF payload into a fresh APP1 segment directly
// after SOI. The stdlib encoder never emits APP1, so no duplicate can result.
func insertJPEGExif(jpegData, tiff []byte) []byte {
	if len(jpegData) < 2 || len(tiff) == 0 {
		return jpegData
	}
	segmentLength := len(tiff) + len(exifHeader) + 2
	if segmentLength > 0xFFFF {
		// APP1 cannot hold oversized payloads; drop the metadata rather than
		// corrupt the file.
		return jpegData
	}
	out := make([]byte, 0, len(jpegData)+segmentLength+2)
	out = append(out, jpegData[:2]...)
	out = append(out, 0xFF, 0xE1)
	out = binary.BigEndian.AppendUint16(out, uint16(segmentLength))
	out = append(out, exifHeader...)
	out = append(out, tiff...)
	out = append(out, jpegData[2:]...)
	return out
}

// normalizeExifPayload strips the optional Exif header so the result always
// starts with the TIFF byte-order mark. goheif returns the header, the JPEG
// segment scanner does not.
func normalizeExifPayload(payload []byte) []byte {
	if len(payload) == 0 {
		return nil
	}
	if bytes.HasPrefix(payload, exifHeader) {
		payload = payload[len(exifHeader):]
	}
	if idx := bytes.Index(payload[:min(len(payload), 16)], []byte("II*\x00")); idx >= 0 {
		return payload[idx:]
	}
	if idx := bytes.Index(payload[:min(len(payload), 16)], []byte("MM\x00*")); idx >= 0 {
		return payload[idx:]
	}
	return payload
}

// orientationFrom parses the EXIF orientation from a TIFF payload, defaulting
// to 1 (upright) when absent or malformed.
func orientationFrom(tiff []byte) int {
	if len(tiff) == 0 {
		return 1
	}
	parsed, err := exif.Decode(bytes.NewReader(tiff))
	if err != nil {
		return 1
	}
	tag, err := parsed.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	value, err := tag.Int(0)
	if err != nil || value < 1 || value > 8 {
		return 1
	}
	return value
}

// clearOrientation returns a copy of the TIFF payload with the IFD0
// orientation entry set to 1. The payload is returned unchanged when the tag
// cannot be located.
func clearOrientation(tiff []byte) []byte {
	if len(tiff) < 8 {
		return tiff
	}
	var order binary.ByteOrder
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		order = binary.LittleEndian
	case tiff[0] == 'M' && tiff[1] == 'M':
		order = binary.BigEndian
	default:
		return tiff
	}

	out := append([]byte(nil), tiff...)
	ifdOffset := int(order.Uint32(out[4:8]))
	if ifdOffset < 0 || ifdOffset+2 > len(out) {
		return tiff
	}
	count := int(order.Uint16(out[ifdOffset : ifdOffset+2]))
	entry := ifdOffset + 2
	for i := 0; i < count; i++ {
		if entry+12 > len(out) {
			return tiff
		}
		tag := order.Uint16(out[entry : entry+2])
		if tag == orientationTag {
			// Orientation is a SHORT stored inline in the value field.
			order.PutUint16(out[entry+8:entry+10], 1)
			return out
		}
		entry += 12
	}
	return tiff
}
