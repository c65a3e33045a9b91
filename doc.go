// Package spatial implements static spatial search indexes over 3D points
// and axis-aligned boxes.
//
// Two query classes are supported, each with a brute-force reference and
// accelerated implementations:
//
//   - box overlap: "which indexed boxes overlap this box" ([BoxSearcher]),
//     served by [BruteForceBoxes] and the Morton-ordered bounding volume
//     hierarchy [MortonHierarchy];
//   - fixed radius: "which indexed points lie within r of this point"
//     ([FixedRadiusSearcher]), served by [BruteForceFixedRadius], the uniform
//     grid [RadixGrid], [KDTreeFixedRadius], and any BoxSearcher wrapped in
//     an [OverlapSearcher].
//
// Single nearest-neighbor queries ([NearestSearcher]) are served by
// [BruteForceNearest] and [KDTreeNearest].
//
// Basic usage:
//
//	cloud := spatial.NewPointCloud(points...)
//	s := spatial.NewFixedRadiusSearcher(spatial.DefaultConfig())
//	if err := s.Build(cloud, 0.5); err != nil {
//		return err
//	}
//	ids := s.Neighbors(spatial.NewPoint(0, 1, 2, 3))
//
// Indexes are immutable after Build. Build must not run concurrently with
// queries; concurrent queries against a built index are safe, and
// [NeighborsParallel], [OverlapsParallel] and [NearestParallel] fan a batch
// of queries out over several goroutines. [NeighborComponents] groups a
// cloud into connected components of its fixed-radius neighbor graph.
//
// # Algorithm selection
//
// [Config].Algorithm picks the concrete searcher. [AlgorithmRecommended]
// resolves per capability: RadixGrid for fixed radius, MortonHierarchy for
// box overlap, brute force for nearest neighbor. An unset or unknown value is
// fatal and goes to [Config].Reporter.
package spatial
