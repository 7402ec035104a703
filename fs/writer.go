// Package fs provides file-based output for enumerated contacts.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/staffdir"
)

// Format selects how batches are laid out in the output stream.
type Format string

// Format constants for Writer.
const (
	// FormatConcat writes every batch as its own indented JSON array with
	// nothing between them. The stream as a whole is not one JSON
	// document; this matches the output of the original scraper.
	FormatConcat Format = "concat"

	// FormatArray writes all contacts into a single JSON array.
	FormatArray Format = "array"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatConcat, FormatArray:
		return f, nil
	default:
		return "", staffdir.Errorf(staffdir.EINVALID, "unknown output format %q", s)
	}
}

const indent = "    "

// Ensure Writer implements staffdir.BatchWriter at compile time.
var _ staffdir.BatchWriter = (*Writer)(nil)

// Writer streams batches as JSON. Each batch is written as soon as it
// arrives; nothing is buffered across batches.
type Writer struct {
	w      io.Writer
	closer io.Closer
	format Format
	n      int
	closed bool
}

// NewWriter creates a Writer that writes to w.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Create creates the file at path, along with its parent directories,
// and returns a Writer for it. Close must be called to flush the file.
func Create(path string, format Format) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := NewWriter(f, format)
	w.closer = f
	return w, nil
}

// WriteBatch writes one batch. The prefix is not part of the output.
func (w *Writer) WriteBatch(ctx context.Context, prefix string, batch []*staffdir.Contact) error {
	if w.closed {
		return staffdir.Errorf(staffdir.EINVALID, "writer closed")
	}

	switch w.format {
	case FormatArray:
		return w.writeElements(batch)
	default:
		return w.writeArray(batch)
	}
}

// Count returns the number of contacts written so far.
func (w *Writer) Count() int {
	return w.n
}

// Close terminates the stream and closes the underlying file, if any.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var err error
	if w.format == FormatArray {
		end := "\n]\n"
		if w.n == 0 {
			end = "[]\n"
		}
		_, err = io.WriteString(w.w, end)
	}

	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *Writer) writeArray(batch []*staffdir.Contact) error {
	if batch == nil {
		batch = []*staffdir.Contact{}
	}
	b, err := marshal(batch, "")
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	w.n += len(batch)
	return nil
}

func (w *Writer) writeElements(batch []*staffdir.Contact) error {
	var buf bytes.Buffer
	for _, c := range batch {
		if w.n == 0 && buf.Len() == 0 {
			buf.WriteString("[\n")
		} else {
			buf.WriteString(",\n")
		}
		b, err := marshal(c, indent)
		if err != nil {
			return err
		}
		buf.WriteString(indent)
		buf.Write(b)
	}
	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return err
	}
	w.n += len(batch)
	return nil
}

// marshal encodes v indented by four spaces, without HTML escaping or a
// trailing newline.
func marshal(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding contacts: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
