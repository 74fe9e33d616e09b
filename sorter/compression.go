package sorter

import (
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// ErrUnknownCompression is returned when a compression codec name is not
// one of the supported values.
var ErrUnknownCompression = errors.New("unknown compression codec")

// Compression selects the codec applied to record streams and spilled
// runs. The zero value means no compression.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionS2     Compression = "s2"
	CompressionLZ4    Compression = "lz4"
	CompressionBrotli Compression = "brotli"
)

// Valid reports whether c names a supported codec.
func (c Compression) Valid() bool {
	switch c {
	case "", CompressionNone, CompressionS2, CompressionLZ4, CompressionBrotli:
		return true
	default:
		return false
	}
}

func (c Compression) newWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case "", CompressionNone:
		return nopWriteCloser{Writer: w}, nil
	case CompressionS2:
		return s2.NewWriter(w), nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionBrotli:
		return brotli.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

func (c Compression) newReader(r io.Reader) (io.Reader, error) {
	switch c {
	case "", CompressionNone:
		return r, nil
	case CompressionS2:
		return s2.NewReader(r), nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	case CompressionBrotli:
		return brotli.NewReader(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
