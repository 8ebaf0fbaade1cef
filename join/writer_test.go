package join

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/field"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, ':')

	require.NoError(t, w.WritePair("k", field.Split("1 k 2", field.Blank), 1, field.Split("k x", field.Blank), 0))
	require.NoError(t, w.WriteUnpaired(field.Split("a,b,", field.ByChar(',')), 1))
	require.NoError(t, w.WriteUnpaired(field.Split("", field.Blank), 0))
	require.NoError(t, w.Flush())

	assert.Equal(t, "k:1:2:x\nb:a:\n\n", buf.String())
	assert.Equal(t, int64(3), w.Rows())
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("broken pipe") }

func TestWriter_Failure(t *testing.T) {
	w := NewWriter(errWriter{}, ' ')
	// Rows stay buffered until the buffer fills or is flushed.
	require.NoError(t, w.WriteUnpaired(field.Split("a", field.Blank), 0))

	err := w.Flush()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIOFault))
	assert.Equal(t, "write error: broken pipe", errors.Diagnostic(err))

	big := field.Split(strings.Repeat("x", 8192), field.ByLine())
	err = w.WriteUnpaired(big, 0)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIOFault), "later writes keep failing")
}
