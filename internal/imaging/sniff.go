package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"carte/internal/domain"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	gifMagic  = []byte("GIF8")
)

// SniffBytes detects the media type of raw image bytes, defaulting to JPEG.
func SniffBytes(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, pngMagic):
		return domain.MediaTypePNG
	case bytes.HasPrefix(raw, jpegMagic):
		return domain.MediaTypeJPEG
	case len(raw) >= 12 && bytes.Equal(raw[0:4], []byte("RIFF")) && bytes.Equal(raw[8:12], []byte("WEBP")):
		return domain.MediaTypeWEBP
	case bytes.HasPrefix(raw, gifMagic):
		return domain.MediaTypeGIF
	default:
		return domain.MediaTypeJPEG
	}
}

// sniffKnown is SniffBytes without the default; ok is false when no signature matched.
func sniffKnown(raw []byte) (string, bool) {
	t := SniffBytes(raw)
	if t == domain.MediaTypeJPEG && !bytes.HasPrefix(raw, jpegMagic) {
		return "", false
	}
	return t, true
}

// ParseDataURL decodes a "data:<type>;base64,<payload>" string, or a bare
// base64 payload, into an ImagePayload. The declared type is kept unless it
// is missing, is not an image type, or the payload signature says otherwise.
func ParseDataURL(s string) (domain.ImagePayload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.ImagePayload{}, domain.ErrNoImages
	}

	declared := ""
	encoded := s
	if strings.HasPrefix(s, "data:") {
		header, payload, found := strings.Cut(s, ",")
		if !found {
			return domain.ImagePayload{}, fmt.Errorf("%w: data URL has no payload", domain.ErrInvalidImage)
		}
		encoded = payload
		declared = strings.TrimPrefix(header, "data:")
		if i := strings.Index(declared, ";"); i >= 0 {
			declared = declared[:i]
		}
		declared = strings.ToLower(strings.TrimSpace(declared))
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return domain.ImagePayload{}, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	return domain.ImagePayload{MediaType: resolveMediaType(declared, data), Data: data}, nil
}

func resolveMediaType(declared string, data []byte) string {
	if sniffed, ok := sniffKnown(data); ok {
		return sniffed
	}
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return domain.MediaTypeJPEG
}

func decodeBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if data, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		return data, nil
	}
	if data, err := base64.RawStdEncoding.DecodeString(encoded); err == nil {
		return data, nil
	}
	return base64.URLEncoding.DecodeString(encoded)
}
