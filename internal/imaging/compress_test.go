package imaging_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carte/internal/domain"
	"carte/internal/imaging"
)

func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8((x ^ y) * 3), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompress_ScalesLongestEdge(t *testing.T) {
	raw := gradientPNG(t, 400, 200)
	opts := imaging.DefaultCompressOptions()
	opts.MaxEdge = 100

	out, err := imaging.Compress(raw, opts)
	require.NoError(t, err)

	assert.Equal(t, domain.MediaTypeJPEG, out.Payload.MediaType)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, 80, out.Quality)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out.Payload.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestCompress_NeverUpscales(t *testing.T) {
	raw := gradientPNG(t, 120, 80)

	out, err := imaging.Compress(raw, imaging.DefaultCompressOptions())
	require.NoError(t, err)

	assert.Equal(t, 120, out.Width)
	assert.Equal(t, 80, out.Height)
}

func TestCompress_StopsAtQualityFloor(t *testing.T) {
	raw := gradientPNG(t, 64, 64)
	opts := imaging.DefaultCompressOptions()
	opts.MaxBytes = 1

	out, err := imaging.Compress(raw, opts)
	require.NoError(t, err)

	assert.Equal(t, 30, out.Quality)
	assert.NotEmpty(t, out.Payload.Data)
}

func TestCompress_RejectsGarbage(t *testing.T) {
	_, err := imaging.Compress([]byte("definitely not an image"), imaging.DefaultCompressOptions())
	assert.Error(t, err)
}

// hugeDimensionPNG is a valid tiny PNG whose header claims w x h pixels.
func hugeDimensionPNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	raw := buf.Bytes()
	// IHDR data starts after the 8-byte signature and the 8-byte chunk header.
	binary.BigEndian.PutUint32(raw[16:20], w)
	binary.BigEndian.PutUint32(raw[20:24], h)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))
	return raw
}

func TestCompress_RejectsOversizedDimensions(t *testing.T) {
	raw := hugeDimensionPNG(t, 16000, 16000)

	_, err := imaging.Compress(raw, imaging.DefaultCompressOptions())

	require.Error(t, err)
	assert.ErrorIs(t, err, imaging.ErrTooManyPixels)
}

func TestCompress_PixelBudgetIsConfigurable(t *testing.T) {
	raw := gradientPNG(t, 100, 100)
	opts := imaging.DefaultCompressOptions()
	opts.MaxPixels = 100*100 - 1

	_, err := imaging.Compress(raw, opts)
	assert.ErrorIs(t, err, imaging.ErrTooManyPixels)

	opts.MaxPixels = 100 * 100
	_, err = imaging.Compress(raw, opts)
	assert.NoError(t, err)
}

func TestNormalizer_OversizedDimensionsFallBackToRawBytes(t *testing.T) {
	n := imaging.NewNormalizer(imaging.DefaultCompressOptions(), 2, zap.NewNop())
	raw := hugeDimensionPNG(t, 16000, 16000)

	got := n.Normalize(raw)

	assert.Equal(t, domain.MediaTypePNG, got.MediaType)
	assert.Equal(t, raw, got.Data)
}

func TestNormalizer_FallsBackToRawBytes(t *testing.T) {
	n := imaging.NewNormalizer(imaging.DefaultCompressOptions(), 2, zap.NewNop())
	raw := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("truncated")...)

	got := n.Normalize(raw)

	assert.Equal(t, domain.MediaTypePNG, got.MediaType)
	assert.Equal(t, raw, got.Data)
}

func TestNormalizer_NormalizeAllKeepsOrder(t *testing.T) {
	n := imaging.NewNormalizer(imaging.DefaultCompressOptions(), 2, zap.NewNop())
	files := [][]byte{
		gradientPNG(t, 30, 10),
		[]byte("GIF89a-broken"),
		gradientPNG(t, 10, 30),
	}

	got, err := n.NormalizeAll(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, domain.MediaTypeJPEG, got[0].MediaType)
	assert.Equal(t, domain.MediaTypeGIF, got[1].MediaType)
	assert.Equal(t, files[1], got[1].Data)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(got[2].Data))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestNormalizer_NormalizeAllCancelled(t *testing.T) {
	n := imaging.NewNormalizer(imaging.DefaultCompressOptions(), 1, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.NormalizeAll(ctx, [][]byte{gradientPNG(t, 8, 8)})
	assert.ErrorIs(t, err, context.Canceled)
}
