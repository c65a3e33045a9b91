package spatial

// BoxSearcher answers "which indexed boxes overlap this box" queries.
// Implementations copy the boxes during Build, so the caller's slice may be
// reused afterwards.
type BoxSearcher interface {
	// Build indexes boxes. It must be called exactly once before Overlaps.
	Build(boxes []AABB) error

	// Overlaps returns the ids of every indexed box overlapping query,
	// in no particular order.
	Overlaps(query AABB) []int
}

// FixedRadiusSearcher answers "which indexed points lie within the build
// radius of this point" queries.
type FixedRadiusSearcher interface {
	// Build indexes cloud for queries of the given radius. Implementations
	// may retain cloud; it must outlive the searcher.
	Build(cloud *PointCloud, radius float64) error

	// Neighbors returns the Index of every indexed point within the radius
	// of query, in no particular order.
	Neighbors(query Point) []int
}

// NearestSearcher answers single nearest-neighbor queries.
type NearestSearcher interface {
	// Build indexes cloud. Implementations may retain cloud; it must
	// outlive the searcher.
	Build(cloud *PointCloud) error

	// Nearest returns the Index of the indexed point closest to query.
	// ok is false when the index is empty.
	Nearest(query Point) (index int, ok bool)
}

var (
	_ BoxSearcher         = (*BruteForceBoxes)(nil)
	_ BoxSearcher         = (*MortonHierarchy)(nil)
	_ FixedRadiusSearcher = (*BruteForceFixedRadius)(nil)
	_ FixedRadiusSearcher = (*RadixGrid)(nil)
	_ FixedRadiusSearcher = (*OverlapSearcher)(nil)
	_ FixedRadiusSearcher = (*KDTreeFixedRadius)(nil)
	_ NearestSearcher     = (*BruteForceNearest)(nil)
	_ NearestSearcher     = (*KDTreeNearest)(nil)
)
