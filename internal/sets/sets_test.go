package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := MakeWith("softmax", "relu")
	assert.True(t, s.Has("softmax"))
	assert.False(t, s.Has("_copyto"))

	s.Insert("_copyto")
	assert.True(t, s.Has("_copyto"))
	assert.Len(t, s, 3)

	s.Delete("relu", "not_there")
	assert.False(t, s.Has("relu"))
	assert.Len(t, s, 2)
}

func TestSorted(t *testing.T) {
	s := MakeWith("c", "a", "b")
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))
	assert.Empty(t, Sorted(Make[int]()))
}
