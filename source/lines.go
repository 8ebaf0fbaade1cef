package source

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/pipeline"
)

// Stdin is the designator that binds standard input.
const Stdin = "-"

// DefaultBufferSize is used when a non-positive buffer size is given.
const DefaultBufferSize = 64 * 1024

// Lines returns an iterator over the lines of r. Each value has its trailing
// "\n" or "\r\n" removed; a final line without a newline is still yielded.
// Lines are not length-limited. Read failures are reported as IO_FAULT
// errors naming the source.
func Lines(name string, r io.Reader, bufSize int) pipeline.Iterator[string] {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &lineIter{name: name, r: bufio.NewReaderSize(r, bufSize)}
}

// Open binds name to a line iterator. The stdin reader is used for "-" and is
// never closed; files are closed by the iterator's Close.
func Open(name string, stdin io.Reader, bufSize int) (pipeline.Iterator[string], error) {
	if name == Stdin {
		return Lines(name, stdin, bufSize), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.IOFault(name, unwrapPathError(err))
	}
	it := Lines(name, f, bufSize).(*lineIter)
	it.closer = f
	return it, nil
}

type lineIter struct {
	name   string
	r      *bufio.Reader
	closer io.Closer
	done   bool
	err    error
}

func (it *lineIter) Next(_ context.Context) (string, bool, error) {
	if it.err != nil {
		return "", false, it.err
	}
	if it.done {
		return "", false, nil
	}
	line, err := it.r.ReadString('\n')
	switch {
	case err == io.EOF:
		it.done = true
		if line == "" {
			return "", false, nil
		}
	case err != nil:
		it.err = errors.IOFault(it.name, err)
		return "", false, it.err
	}
	return trimEOL(line), true, nil
}

func (it *lineIter) Close() error {
	if it.closer == nil {
		return nil
	}
	c := it.closer
	it.closer = nil
	if err := c.Close(); err != nil {
		return errors.IOFault(it.name, err)
	}
	return nil
}

// trimEOL removes "\n" and a "\r" directly before it. A lone trailing "\r"
// is kept as data.
func trimEOL(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	return strings.TrimSuffix(line[:len(line)-1], "\r")
}

// unwrapPathError drops the *os.PathError wrapper so the diagnostic reads
// "name: reason" rather than repeating the operation and path.
func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
