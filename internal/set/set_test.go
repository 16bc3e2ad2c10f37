package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddIsIdempotent(t *testing.T) {
	s := New[string]()

	assert.True(t, s.Add("firefox"))
	assert.False(t, s.Add("firefox"))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has("firefox"))
}

func TestSet_RemoveAbsentIsNoop(t *testing.T) {
	s := New[string]()
	s.Add("a")

	assert.False(t, s.Remove("b"))
	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, 0, s.Len())
}

func TestSet_IdentityMembership(t *testing.T) {
	type win struct{ id string }
	a := &win{id: "same"}
	b := &win{id: "same"}

	s := New[*win]()
	s.Add(a)

	assert.True(t, s.Has(a))
	assert.False(t, s.Has(b), "membership is by pointer identity, not value")
}

func TestSet_ClearAndItems(t *testing.T) {
	s := New[int]()
	s.Add(1)
	s.Add(2)

	assert.ElementsMatch(t, []int{1, 2}, s.Items())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
}
