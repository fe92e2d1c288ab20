package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSet(t *testing.T) {
	s := NewNameSet("secret2", "secret1", "secret1")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("secret1"))
	assert.True(t, s.Contains("secret2"))
	assert.False(t, s.Contains("Secret1"))
	assert.False(t, s.Contains(""))
	assert.Equal(t, []string{"secret1", "secret2"}, s.Sorted())
}

func TestNameSet_Empty(t *testing.T) {
	var nilSet NameSet
	assert.False(t, nilSet.Contains("x"))
	assert.Equal(t, 0, nilSet.Len())
	assert.Empty(t, nilSet.Sorted())

	assert.Equal(t, 0, NewNameSet().Len())
}
