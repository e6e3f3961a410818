package media

import (
	"fmt"

	"github.com/h2non/bimg"
)

// Compressor shrinks an image before it travels to object storage, bounding
// payload size per upload.
type Compressor interface {
	Compress(data []byte) ([]byte, string, error)
}

// BimgCompressor resizes to a maximum dimension and re-encodes as JPEG.
// MaxDimension and Quality are tunables, not load-bearing semantics.
type BimgCompressor struct {
	MaxDimension int
	Quality      int
}

func NewBimgCompressor(maxDimension, quality int) *BimgCompressor {
	if maxDimension <= 0 {
		maxDimension = 1920
	}
	if quality <= 0 {
		quality = 80
	}
	return &BimgCompressor{MaxDimension: maxDimension, Quality: quality}
}

// Compress returns the compressed bytes and their content type.
func (c *BimgCompressor) Compress(data []byte) ([]byte, string, error) {
	img := bimg.NewImage(data)
	size, err := img.Size()
	if err != nil {
		return nil, "", fmt.Errorf("error reading image dimensions: %w", err)
	}

	options := bimg.Options{
		Quality:       c.Quality,
		Type:          bimg.JPEG,
		StripMetadata: true,
	}
	// Only downscale; small images keep their dimensions.
	if size.Width > c.MaxDimension || size.Height > c.MaxDimension {
		if size.Width >= size.Height {
			options.Width = c.MaxDimension
		} else {
			options.Height = c.MaxDimension
		}
	}

	out, err := img.Process(options)
	if err != nil {
		return nil, "", fmt.Errorf("error compressing image: %w", err)
	}
	return out, "image/jpeg", nil
}
