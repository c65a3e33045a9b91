package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointCloud_AssignAndAccess(t *testing.T) {
	points := []Point{NewPoint(0, 0, 0, 0), NewPoint(1, 1, 1, 1)}
	c := NewPointCloud(points...)
	require.Equal(t, 2, c.Len())

	// Assign copies the slice.
	points[0] = NewPoint(9, 9, 9, 9)
	assert.Equal(t, 0, c.Point(0).Index)

	c.Set(1, NewPoint(5, 2, 2, 2))
	assert.Equal(t, 5, c.Point(1).Index)

	c.Append(NewPoint(6, 3, 3, 3))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 6, c.Points()[2].Index)

	c.Assign(nil)
	assert.Equal(t, 0, c.Len())
}

func TestPointCloud_BoundingBox(t *testing.T) {
	assert.Equal(t, NewAABBAt(0, 0, 0), NewPointCloud().BoundingBox())

	c := NewPointCloud(NewPoint(0, 1, 2, 3))
	assert.Equal(t, NewAABBAt(1, 2, 3), c.BoundingBox())

	c = fixtureCloud()
	assert.Equal(t, NewAABB(0, 1, 0, 1, 0, 1.3), c.BoundingBox())
}

func TestPointCloud_Subset(t *testing.T) {
	c := fixtureCloud()
	sub := c.Subset([]int{4, 0, 2})
	require.Equal(t, 3, sub.Len())
	assert.Equal(t, 4, sub.Point(0).Index)
	assert.Equal(t, 0, sub.Point(1).Index)
	assert.Equal(t, 2, sub.Point(2).Index)

	// The source cloud is unaffected.
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, 0, c.Subset(nil).Len())
}

func TestPointCloud_Select(t *testing.T) {
	c := fixtureCloud()
	sel := c.Select([]bool{true, false, false, true, true})
	require.Equal(t, 3, sel.Len())
	assert.Equal(t, []int{0, 3, 4}, []int{sel.Point(0).Index, sel.Point(1).Index, sel.Point(2).Index})

	assert.Panics(t, func() { c.Select([]bool{true}) })
}
