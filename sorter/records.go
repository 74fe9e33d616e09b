package sorter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/amp-labs/typekey/codec"
	"github.com/amp-labs/typekey/value"
)

// Writer writes length-framed key/value records to a stream. Each frame is
// the key's byte length and the value's byte length as variable-length
// integers, followed by the encoded key and encoded value. The frame makes
// record boundaries cheap to find without walking the encodings.
type Writer struct {
	frame   io.WriteCloser
	buf     *bufio.Writer
	scratch []byte
}

// NewWriter returns a Writer streaming framed records to w through the
// given compression codec.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	frame, err := c.newWriter(w)
	if err != nil {
		return nil, err
	}

	return &Writer{
		frame: frame,
		buf:   bufio.NewWriter(frame),
	}, nil
}

// Write appends one record of already-encoded key and value bytes.
func (w *Writer) Write(key, val []byte) error {
	w.scratch = codec.AppendVarint(w.scratch[:0], int64(len(key)))
	w.scratch = codec.AppendVarint(w.scratch, int64(len(val)))

	if _, err := w.buf.Write(w.scratch); err != nil {
		return fmt.Errorf("write record frame: %w", err)
	}

	if _, err := w.buf.Write(key); err != nil {
		return fmt.Errorf("write record key: %w", err)
	}

	if _, err := w.buf.Write(val); err != nil {
		return fmt.Errorf("write record value: %w", err)
	}

	return nil
}

// WriteValues encodes key and val and appends them as one record.
func (w *Writer) WriteValues(key, val *value.Value) error {
	keyBytes, err := codec.Encode(key)
	if err != nil {
		return err
	}

	valBytes, err := codec.Encode(val)
	if err != nil {
		return err
	}

	return w.Write(keyBytes, valBytes)
}

// Close flushes buffered records and closes the compression frame. It does
// not close the underlying writer.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("flush records: %w", err)
	}

	if err := w.frame.Close(); err != nil {
		return fmt.Errorf("close compression frame: %w", err)
	}

	return nil
}

// Reader reads length-framed records produced by a Writer.
type Reader struct {
	src *bufio.Reader
}

// NewReader returns a Reader consuming framed records from r through the
// given compression codec.
func NewReader(r io.Reader, c Compression) (*Reader, error) {
	frame, err := c.newReader(r)
	if err != nil {
		return nil, err
	}

	return &Reader{src: bufio.NewReader(frame)}, nil
}

// Next returns the next record's encoded key and value bytes. The returned
// slices are freshly allocated and owned by the caller. It returns io.EOF
// after the last record; a stream ending mid-record fails with
// io.ErrUnexpectedEOF.
func (r *Reader) Next() (key, val []byte, err error) {
	keyLen, err := r.readLength(true)
	if err != nil {
		return nil, nil, err
	}

	valLen, err := r.readLength(false)
	if err != nil {
		return nil, nil, err
	}

	key = make([]byte, keyLen)
	if _, err := io.ReadFull(r.src, key); err != nil {
		return nil, nil, fmt.Errorf("read record key: %w", noEOF(err))
	}

	val = make([]byte, valLen)
	if _, err := io.ReadFull(r.src, val); err != nil {
		return nil, nil, fmt.Errorf("read record value: %w", noEOF(err))
	}

	return key, val, nil
}

// readLength reads one varint frame length. Only the first byte of the
// first length may observe a clean end of stream.
func (r *Reader) readLength(first bool) (int, error) {
	head, err := r.src.ReadByte()
	if err == io.EOF {
		if first {
			return 0, io.EOF
		}

		return 0, fmt.Errorf("read record frame: %w", io.ErrUnexpectedEOF)
	}

	if err != nil {
		return 0, fmt.Errorf("read record frame: %w", err)
	}

	var raw [9]byte

	raw[0] = head

	size := codec.VarintLen(head)
	if size > 1 {
		if _, err := io.ReadFull(r.src, raw[1:size]); err != nil {
			return 0, fmt.Errorf("read record frame: %w", noEOF(err))
		}
	}

	n, _, err := codec.Varint(raw[:size], 0)
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: negative record length %d", codec.ErrLength, n)
	}

	return int(n), nil
}

// noEOF converts a bare io.EOF into io.ErrUnexpectedEOF so a stream that
// stops mid-record never looks like a clean end.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}
