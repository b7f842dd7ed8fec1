// Package imaging recompresses photos. JPEG and PNG are decoded from content
// rather than extension, optionally downscaled, and re-encoded; HEIC decodes
// through goheif and re-encodes as JPEG since no Go HEIC encoder exists. EXIF
// metadata is carried over into JPEG outputs with the orientation tag applied
// to the pixels and then cleared.
package imaging
