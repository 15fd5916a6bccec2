// Package imageio decodes the raster formats pixmorph accepts and
// fingerprints their bytes.
package imageio

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat wraps image.ErrFormat for inputs no decoder claims.
var ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

// Image is a decoded input together with its raw-byte fingerprint.
type Image struct {
	Img    image.Image
	Format string
	Hash   uint64
	Size   int
}

// Decode reads an image from r.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return img, format, nil
}

// DecodeBytes decodes data and records its content hash.
func DecodeBytes(data []byte) (*Image, error) {
	img, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Image{Img: img, Format: format, Hash: ContentHash(data), Size: len(data)}, nil
}

// Load reads and decodes the file at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// ContentHash is the xxHash64 of data.
func ContentHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// HashString renders h as hex truncated to hexLen characters (0 = full).
func HashString(h uint64, hexLen int) string {
	b := []byte{byte(h >> 56), byte(h >> 48), byte(h >> 40), byte(h >> 32),
		byte(h >> 24), byte(h >> 16), byte(h >> 8), byte(h)}
	full := hex.EncodeToString(b)
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
