package types

import (
	"fmt"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(fmt.Errorf("transient")))
	assert.False(t, IsFatal(errors.Trace(fmt.Errorf("transient"))))

	fatal := NewFatalErrorf("workflow has no trigger")
	assert.True(t, IsFatal(fatal))
	assert.Equal(t, "workflow has no trigger", fatal.Error())

	// fatality survives annotation and wrapping
	assert.True(t, IsFatal(errors.Trace(fatal)))
	assert.True(t, IsFatal(errors.Annotatef(fatal, "job j1")))
	assert.True(t, IsFatal(fmt.Errorf("run: %w", fatal)))

	wrapped := NewFatalError(fmt.Errorf("bad graph"))
	assert.True(t, IsFatal(wrapped))
	assert.Equal(t, "bad graph", wrapped.Error())
}
