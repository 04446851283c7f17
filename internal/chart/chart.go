// Package chart turns uploaded chart screenshots into decoded images.
package chart

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var ErrUnsupportedImage = errors.New("unsupported image")

// Upload is a decoded chart image and the digest of its original bytes.
type Upload struct {
	Image  image.Image
	Format string
	Digest string
}

func Decode(raw []byte) (*Upload, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty upload: %w", ErrUnsupportedImage)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return &Upload{Image: img, Format: format, Digest: Digest(raw)}, nil
}

// Digest is the hex sha256 of raw; it identifies a report for an image.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
