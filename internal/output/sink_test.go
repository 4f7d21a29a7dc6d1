package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdSinkPrintOverwritesWithCarriageReturn(t *testing.T) {
	var out, errBuf bytes.Buffer
	s := NewStdSink(&out, &errBuf)

	s.Print("[%3d%%] done", 50)
	assert.Equal(t, "\r[ 50%] done", out.String())
}

func TestStdSinkErrorAppendsLine(t *testing.T) {
	var out, errBuf bytes.Buffer
	s := NewStdSink(&out, &errBuf)

	s.Error("skipping %s: %v", "a.txt", assert.AnError)
	assert.Contains(t, errBuf.String(), "skipping a.txt")
	assert.True(t, bytes.HasSuffix(errBuf.Bytes(), []byte("\n")))
}
