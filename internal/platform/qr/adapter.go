package qr

import (
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	commonerrors "letscheck-client/internal/common/errors"
	"letscheck-client/internal/common/logger"
)

// FrameSource abstracts the camera: a stream of frames that may or may not
// contain a decodable code. It returns io.EOF when exhausted. The source is
// an exclusive resource and must be released exactly once.
type FrameSource interface {
	NextFrame(ctx context.Context) (image.Image, error)
	Close() error
}

// Scanner decodes at most one QR payload from a FrameSource, then releases
// it. Frames that fail to decode are silently skipped; the source is closed
// on every exit path, decode success included.
type Scanner struct {
	source FrameSource
	reader gozxing.Reader
}

func NewScanner(source FrameSource) *Scanner {
	return &Scanner{
		source: source,
		reader: qrcode.NewQRCodeReader(),
	}
}

// Scan blocks until a frame decodes, the source is exhausted, or ctx is
// cancelled.
func (s *Scanner) Scan(ctx context.Context) (string, error) {
	defer func() {
		if err := s.source.Close(); err != nil {
			logger.Warn().Err(err).Msg("frame source close failed")
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return "", commonerrors.Wrap(err, commonerrors.ErrCodeScanFailed, "scan cancelled")
		}

		frame, err := s.source.NextFrame(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", commonerrors.New(commonerrors.ErrCodeScanFailed, "no QR code found")
			}
			return "", commonerrors.Wrap(err, commonerrors.ErrCodeScanFailed, "frame acquisition failed")
		}

		text, ok := s.decode(frame)
		if !ok {
			// Per-frame decode failures are expected; keep scanning.
			continue
		}
		return text, nil
	}
}

func (s *Scanner) decode(frame image.Image) (string, bool) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(frame)
	if err != nil {
		logger.Debug().Err(err).Msg("frame not binarizable")
		return "", false
	}
	result, err := s.reader.Decode(bmp, nil)
	if err != nil {
		logger.Debug().Err(err).Msg("frame without decodable code")
		return "", false
	}
	return result.GetText(), true
}

// FileSource serves a single still image as the only frame, for decoding a
// photo or screenshot of a QR code.
type FileSource struct {
	path string
	done bool
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) NextFrame(ctx context.Context) (image.Image, error) {
	if f.done {
		return nil, io.EOF
	}
	f.done = true

	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (f *FileSource) Close() error {
	f.done = true
	return nil
}
