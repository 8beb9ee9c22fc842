package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // decoders registered for image.Decode
	"image/jpeg"
	_ "image/png"
	"math"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"carte/internal/domain"
)

// ErrTooManyPixels is returned when an image's declared dimensions exceed
// the decode budget.
var ErrTooManyPixels = errors.New("image dimensions exceed decode budget")

// CompressOptions bounds a re-encoded upload. Qualities are JPEG quality
// values in 1..100. MaxPixels caps width*height before any pixel is decoded.
type CompressOptions struct {
	MaxPixels    int
	MaxEdge      int
	MaxBytes     int
	StartQuality int
	MinQuality   int
	QualityStep  int
}

// DefaultCompressOptions returns the upload policy: longest edge 1920 px,
// JPEG quality from 80 down to 30 in steps of 10 until at most 800 KB.
func DefaultCompressOptions() CompressOptions {
	return CompressOptions{
		MaxPixels:    50_000_000,
		MaxEdge:      1920,
		MaxBytes:     800 * 1024,
		StartQuality: 80,
		MinQuality:   30,
		QualityStep:  10,
	}
}

func (o CompressOptions) withDefaults() CompressOptions {
	d := DefaultCompressOptions()
	if o.MaxPixels <= 0 {
		o.MaxPixels = d.MaxPixels
	}
	if o.MaxEdge <= 0 {
		o.MaxEdge = d.MaxEdge
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = d.MaxBytes
	}
	if o.StartQuality <= 0 || o.StartQuality > 100 {
		o.StartQuality = d.StartQuality
	}
	if o.MinQuality <= 0 || o.MinQuality > o.StartQuality {
		o.MinQuality = min(d.MinQuality, o.StartQuality)
	}
	if o.QualityStep <= 0 {
		o.QualityStep = d.QualityStep
	}
	return o
}

// Compressed is the result of Compress.
type Compressed struct {
	Payload domain.ImagePayload
	Width   int
	Height  int
	Quality int
}

// Compress decodes raw, scales it so the longer edge fits MaxEdge (never
// upscaling), and re-encodes as JPEG, lowering quality until the output fits
// MaxBytes or MinQuality is reached.
func Compress(raw []byte, opts CompressOptions) (*Compressed, error) {
	opts = opts.withDefaults()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("reading image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(opts.MaxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img := flatten(src, opts.MaxEdge)

	var buf bytes.Buffer
	quality := opts.StartQuality
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encoding jpeg at quality %d: %w", quality, err)
		}
		if buf.Len() <= opts.MaxBytes || quality-opts.QualityStep < opts.MinQuality {
			break
		}
		quality -= opts.QualityStep
	}

	b := img.Bounds()
	return &Compressed{
		Payload: domain.ImagePayload{MediaType: domain.MediaTypeJPEG, Data: buf.Bytes()},
		Width:   b.Dx(),
		Height:  b.Dy(),
		Quality: quality,
	}, nil
}

// flatten draws src onto an opaque white canvas, scaled down to maxEdge.
func flatten(src image.Image, maxEdge int) image.Image {
	sb := src.Bounds()
	w, h := sb.Dx(), sb.Dy()

	if longest := max(w, h); longest > maxEdge {
		ratio := float64(maxEdge) / float64(longest)
		w = max(1, int(math.Round(float64(w)*ratio)))
		h = max(1, int(math.Round(float64(h)*ratio)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	if w == sb.Dx() && h == sb.Dy() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	}
	return dst
}

// Normalizer turns uploaded files into payloads for the model backends.
type Normalizer struct {
	opts        CompressOptions
	concurrency int
	logger      *zap.Logger
}

// NewNormalizer creates a Normalizer. concurrency bounds parallel work in NormalizeAll.
func NewNormalizer(opts CompressOptions, concurrency int, logger *zap.Logger) *Normalizer {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Normalizer{opts: opts.withDefaults(), concurrency: concurrency, logger: logger}
}

// Normalize compresses one file. When compression fails the raw bytes are
// returned with a sniffed media type.
func (n *Normalizer) Normalize(raw []byte) domain.ImagePayload {
	out, err := Compress(raw, n.opts)
	if err != nil {
		mediaType := SniffBytes(raw)
		n.logger.Warn("image compression failed, sending original",
			zap.String("media_type", mediaType),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return domain.ImagePayload{MediaType: mediaType, Data: raw}
	}
	n.logger.Debug("image compressed",
		zap.Int("original_bytes", len(raw)),
		zap.Int("compressed_bytes", len(out.Payload.Data)),
		zap.Int("width", out.Width),
		zap.Int("height", out.Height),
		zap.Int("quality", out.Quality),
	)
	return out.Payload
}

// NormalizeAll normalizes files in parallel and keeps their order.
func (n *Normalizer) NormalizeAll(ctx context.Context, files [][]byte) ([]domain.ImagePayload, error) {
	out := make([]domain.ImagePayload, len(files))
	p := pool.New().WithContext(ctx).WithMaxGoroutines(n.concurrency)
	for i, f := range files {
		i, f := i, f
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = n.Normalize(f)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
