package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityAssigner(t *testing.T) {
	ids := NewIdentityAssigner()
	assert.Equal(t, 0, ids.Len())

	id, created := ids.Resolve("rice")
	assert.Equal(t, 1, id)
	assert.True(t, created)

	id, created = ids.Resolve("duke")
	assert.Equal(t, 2, id)
	assert.True(t, created)

	id, created = ids.Resolve("rice")
	assert.Equal(t, 1, id)
	assert.False(t, created)
	assert.Equal(t, 2, ids.Len())

	id, ok := ids.Lookup("duke")
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = ids.Lookup("yale")
	assert.False(t, ok)

	id, _ = ids.Resolve("yale")
	assert.Equal(t, 3, id)
}
