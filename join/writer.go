package join

import (
	"bufio"
	"io"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/field"
)

const outputName = "write error"

// Writer formats output rows: the key, then every other field of each line,
// each prefixed with the output separator.
type Writer struct {
	w    *bufio.Writer
	sep  rune
	rows int64
}

// NewWriter returns a buffered Writer over w using sep between fields.
func NewWriter(w io.Writer, sep rune) *Writer {
	return &Writer{w: bufio.NewWriter(w), sep: sep}
}

// WritePair writes one joined row.
func (w *Writer) WritePair(key string, left field.Line, leftKey int, right field.Line, rightKey int) error {
	w.w.WriteString(key)
	w.fields(left, leftKey)
	w.fields(right, rightKey)
	return w.end()
}

// WriteUnpaired writes the key of line followed by its other fields.
func (w *Writer) WriteUnpaired(line field.Line, key int) error {
	w.w.WriteString(line.Field(key))
	w.fields(line, key)
	return w.end()
}

// Rows returns the number of rows written.
func (w *Writer) Rows() int64 {
	return w.rows
}

// Flush writes any buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return errors.IOFault(outputName, err)
	}
	return nil
}

func (w *Writer) fields(line field.Line, skip int) {
	line.Each(skip, func(f string) {
		w.w.WriteRune(w.sep)
		w.w.WriteString(f)
	})
}

// end terminates the row. bufio.Writer keeps the first write error, so one
// check per row covers every write in it.
func (w *Writer) end() error {
	if err := w.w.WriteByte('\n'); err != nil {
		return errors.IOFault(outputName, err)
	}
	w.rows++
	return nil
}
