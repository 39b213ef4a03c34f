package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	r := NewHandlerRegistry()
	typed := newTestHandler()
	all := newTestHandler()

	r.Register(typed, "RecordRestored", "ConflictDetected")
	r.Register(typed, "RecordRestored")
	r.Register(all)

	hs := r.Handlers("RecordRestored")
	assert.Len(t, hs, 2, "duplicate registration is ignored")
	assert.Same(t, typed, hs[0])
	assert.Same(t, all, hs[1])
	assert.Len(t, r.Handlers("Unknown"), 1)

	r.Unregister(typed)
	assert.Len(t, r.Handlers("RecordRestored"), 1)
	assert.Len(t, r.Handlers("ConflictDetected"), 1)

	r.Unregister(all)
	assert.Empty(t, r.Handlers("RecordRestored"))
}
