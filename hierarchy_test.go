package spatial

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandBits(t *testing.T) {
	assert.Equal(t, uint32(0), expandBits(0))
	assert.Equal(t, uint32(1), expandBits(1))
	assert.Equal(t, uint32(0b1001), expandBits(0b11))
	assert.Equal(t, uint32(0x09249249), expandBits(1023))
}

func TestMortonCode_Interleave(t *testing.T) {
	// The lowest quantization step on each axis lands in bits 2, 1, 0.
	step := 1.0 / mortonResolution
	assert.Equal(t, uint32(0b100), mortonCode(step, 0, 0))
	assert.Equal(t, uint32(0b010), mortonCode(0, step, 0))
	assert.Equal(t, uint32(0b001), mortonCode(0, 0, step))
	assert.Equal(t, uint32(1<<30-1), mortonCode(1, 1, 1))
	// Out-of-range inputs clamp.
	assert.Equal(t, mortonCode(0, 0, 0), mortonCode(-3, -1, -0.5))
	assert.Equal(t, mortonCode(1, 1, 1), mortonCode(7, 2, 1.5))
}

func TestMortonOrder_StableOnEqualKeys(t *testing.T) {
	boxes := []AABB{NewAABBAt(1, 1, 1), NewAABBAt(0, 0, 0), NewAABBAt(1, 1, 1), NewAABBAt(0, 0, 0)}
	assert.Equal(t, []int{1, 3, 0, 2}, mortonOrder(boxes))
}

func TestMortonHierarchy_EmptyBuild(t *testing.T) {
	h := NewMortonHierarchy()
	require.ErrorIs(t, h.Build(nil), ErrEmptyInput)
	assert.Nil(t, h.Overlaps(NewAABB(0, 1, 0, 1, 0, 1)))
	assert.ErrorIs(t, h.Validate(), ErrInvalidHierarchy)
}

func TestMortonHierarchy_WellFormed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 16, 17, 31, 33, 100, 257} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			h := NewMortonHierarchy()
			require.NoError(t, h.Build(randomBoxes(rng, n, 0.2)))
			assert.Equal(t, n, h.Len())
			assert.Equal(t, 2*n-1, h.NumNodes())
			require.NoError(t, h.Validate())
		})
	}
}

func TestMortonHierarchy_LeavesHoldEveryID(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	boxes := randomBoxes(rng, 37, 0.1)
	h := NewMortonHierarchy()
	require.NoError(t, h.Build(boxes))

	var leafIDs []int
	for _, node := range h.nodes {
		if node.leaf {
			leafIDs = append(leafIDs, node.id)
		}
	}
	want := make([]int, len(boxes))
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, sortedIDs(leafIDs))
}

func TestMortonHierarchy_Balanced(t *testing.T) {
	// With N = 2^n + m every leaf sits at depth n or n+1.
	for _, n := range []int{5, 9, 17, 100} {
		h := NewMortonHierarchy()
		require.NoError(t, h.Build(randomBoxes(rand.New(rand.NewSource(int64(n))), n, 0.1)))

		minDepth, maxDepth := n, 0
		var walk func(i, depth int)
		walk = func(i, depth int) {
			node := h.nodes[i]
			if node.leaf {
				minDepth = min(minDepth, depth)
				maxDepth = max(maxDepth, depth)
				return
			}
			walk(i+1, depth+1)
			walk(node.right, depth+1)
		}
		walk(0, 0)
		assert.LessOrEqual(t, maxDepth-minDepth, 1, "n=%d", n)
	}
}

func TestMortonHierarchy_InputCopied(t *testing.T) {
	boxes := []AABB{NewAABB(0, 1, 0, 1, 0, 1), NewAABB(2, 3, 2, 3, 2, 3)}
	boxes[0].ID, boxes[1].ID = 10, 11
	h := NewMortonHierarchy()
	require.NoError(t, h.Build(boxes))

	boxes[0] = NewAABB(50, 51, 50, 51, 50, 51)
	assert.Equal(t, []int{10}, h.Overlaps(NewAABBAt(0.5, 0.5, 0.5)))
}

func TestMortonHierarchy_SingleBox(t *testing.T) {
	b := NewAABB(0, 1, 0, 1, 0, 1)
	b.ID = 42
	h := NewMortonHierarchy()
	require.NoError(t, h.Build([]AABB{b}))
	assert.Equal(t, []int{42}, h.Overlaps(NewAABBAt(1, 1, 1)))
	assert.Empty(t, h.Overlaps(NewAABBAt(2, 2, 2)))
	assert.Equal(t, b, h.Bounds())
}

func TestMortonHierarchy_MatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		boxes := randomBoxes(rng, 100, 0.2)
		queries := randomBoxes(rng, 100, 0.2)

		h := NewMortonHierarchy()
		require.NoError(t, h.Build(boxes))
		brute := NewBruteForceBoxes()
		require.NoError(t, brute.Build(boxes))

		for i, q := range queries {
			assert.Equal(t, sortedIDs(brute.Overlaps(q)), sortedIDs(h.Overlaps(q)), "seed=%d query=%d", seed, i)
		}
	}
}

func TestMortonHierarchy_QueryIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	h := NewMortonHierarchy()
	require.NoError(t, h.Build(randomBoxes(rng, 50, 0.3)))
	q := NewAABB(0.2, 0.6, 0.2, 0.6, 0.2, 0.6)
	assert.Equal(t, h.Overlaps(q), h.Overlaps(q))
}
