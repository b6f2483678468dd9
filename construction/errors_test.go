package construction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	nf := pointNotFound("p-1")
	assert.Equal(t, "point not found: p-1", nf.Error())
	assert.True(t, IsPointNotFound(nf))
	assert.False(t, IsInvalidConstruction(nf))

	ic := invalidConstruction("Cannot create line with identical points")
	assert.Equal(t, "invalid construction: Cannot create line with identical points", ic.Error())

	wrapped := fmt.Errorf("command failed: %w", ic)
	assert.True(t, IsInvalidConstruction(wrapped))
	assert.Equal(t, KindInvalidConstruction, KindOf(wrapped))

	assert.True(t, errors.Is(fmt.Errorf("x: %w", ErrNoIntersections), ErrNoIntersections))
	assert.False(t, errors.Is(ic, ErrNoIntersections))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}
