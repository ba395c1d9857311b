package jsonlutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
}

func TestStartConvertsAndFlushes(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[int](&buf, 1, func(i int) any { return item{Name: string(rune('a' + i))} }, nil)
	for i := 0; i < 3; i++ {
		in <- i
	}
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "{\"name\":\"a\"}\n{\"name\":\"b\"}\n{\"name\":\"c\"}\n", buf.String())
}

func TestStartNoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	in, done := Start[item](&buf, 0, nil, nil)
	in <- item{Name: ">a&b"}
	close(in)
	require.NoError(t, <-done)
	assert.Equal(t, "{\"name\":\">a&b\"}\n", buf.String())
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestStartBrokenPipeIsQuiet(t *testing.T) {
	pipe := errors.New("broken pipe")
	in, done := Start[item](failWriter{pipe}, 0, nil, func(err error) bool { return errors.Is(err, pipe) })
	in <- item{Name: "x"}
	close(in)
	assert.NoError(t, <-done)

	in, done = Start[item](failWriter{pipe}, 0, nil, nil)
	in <- item{Name: "x"}
	close(in)
	assert.ErrorIs(t, <-done, pipe)
}
