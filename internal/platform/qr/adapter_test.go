package qr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "letscheck-client/internal/common/errors"
)

const testHash = "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb"

// qrImage renders text as a QR code image for decoding tests.
func qrImage(t *testing.T, text string) image.Image {
	t.Helper()

	writer := qrcode.NewQRCodeWriter()
	matrix, err := writer.Encode(text, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// blankImage has no decodable code in it.
func blankImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	return img
}

type fakeSource struct {
	frames []image.Image
	errs   []error
	idx    int
	closed int
}

func (f *fakeSource) NextFrame(ctx context.Context) (image.Image, error) {
	if f.idx >= len(f.frames) {
		return nil, io.EOF
	}
	frame, err := f.frames[f.idx], error(nil)
	if f.idx < len(f.errs) {
		err = f.errs[f.idx]
	}
	f.idx++
	return frame, err
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

func TestScanDecodesFirstReadableFrame(t *testing.T) {
	source := &fakeSource{frames: []image.Image{blankImage(), qrImage(t, testHash)}}
	scanner := NewScanner(source)

	decoded, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testHash, decoded)
	assert.Equal(t, 1, source.closed)
}

func TestScanExhaustedSource(t *testing.T) {
	source := &fakeSource{frames: []image.Image{blankImage()}}
	scanner := NewScanner(source)

	_, err := scanner.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeScanFailed))
	assert.Equal(t, 1, source.closed)
}

func TestScanCancelledReleasesSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{frames: []image.Image{qrImage(t, testHash)}}
	scanner := NewScanner(source)

	_, err := scanner.Scan(ctx)
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeScanFailed))
	assert.Equal(t, 1, source.closed)
}

func TestScanFrameAcquisitionError(t *testing.T) {
	source := &fakeSource{
		frames: []image.Image{nil},
		errs:   []error{errors.New("device gone")},
	}
	scanner := NewScanner(source)

	_, err := scanner.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeScanFailed))
	assert.Equal(t, 1, source.closed)
}

func TestFileSourceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, qrImage(t, testHash)))
	require.NoError(t, file.Close())

	scanner := NewScanner(NewFileSource(path))
	decoded, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testHash, decoded)
}

func TestFileSourceServesSingleFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, blankImage()))
	require.NoError(t, file.Close())

	source := NewFileSource(path)
	_, err = source.NextFrame(context.Background())
	require.NoError(t, err)

	_, err = source.NextFrame(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestFileSourceMissingFile(t *testing.T) {
	scanner := NewScanner(NewFileSource(filepath.Join(t.TempDir(), "missing.png")))

	_, err := scanner.Scan(context.Background())
	require.Error(t, err)
	assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeScanFailed))
}
