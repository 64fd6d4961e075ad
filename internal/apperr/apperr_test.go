package apperr_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/tempo/internal/apperr"
)

var errSample = &apperr.Error{Message: "task %s not found"}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt("abc")

	assert.Equal(t, "task abc not found", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", err), errSample)
}

func TestWrap(t *testing.T) {
	err := errSample.Fmt("abc").Wrap(io.EOF)

	assert.Equal(t, "task abc not found: EOF", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDistinctErrors(t *testing.T) {
	other := &apperr.Error{Message: "something else"}

	assert.False(t, errors.Is(errSample, other))
	assert.False(t, errors.Is(errSample, io.EOF))
}
