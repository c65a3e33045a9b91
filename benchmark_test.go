package spatial

import (
	"math/rand"
	"testing"
)

func benchCloud(n int) (*PointCloud, []Point) {
	rng := rand.New(rand.NewSource(42))
	return NewPointCloud(randomPoints(rng, n)...), randomPoints(rng, 256)
}

// --- Fixed radius ---

func benchFixedRadius(b *testing.B, s FixedRadiusSearcher, n int) {
	b.Helper()
	cloud, queries := benchCloud(n)
	if err := s.Build(cloud, 0.05); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Neighbors(queries[i%len(queries)])
	}
}

func BenchmarkRadixGrid_1000(b *testing.B)   { benchFixedRadius(b, NewRadixGrid(), 1000) }
func BenchmarkRadixGrid_100000(b *testing.B) { benchFixedRadius(b, NewRadixGrid(), 100000) }
func BenchmarkBruteForceFixedRadius_1000(b *testing.B) {
	benchFixedRadius(b, NewBruteForceFixedRadius(), 1000)
}
func BenchmarkBruteForceFixedRadius_100000(b *testing.B) {
	benchFixedRadius(b, NewBruteForceFixedRadius(), 100000)
}
func BenchmarkKDTreeFixedRadius_100000(b *testing.B) {
	benchFixedRadius(b, NewKDTreeFixedRadius(DefaultLeafSize), 100000)
}
func BenchmarkOverlapSearcher_100000(b *testing.B) {
	benchFixedRadius(b, NewOverlapSearcher(NewMortonHierarchy()), 100000)
}

// --- Box overlap ---

func benchBoxes(b *testing.B, s BoxSearcher, n int) {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	boxes := randomBoxes(rng, n, 0.01)
	queries := randomBoxes(rng, 256, 0.05)
	if err := s.Build(boxes); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Overlaps(queries[i%len(queries)])
	}
}

func BenchmarkMortonHierarchy_100000(b *testing.B)  { benchBoxes(b, NewMortonHierarchy(), 100000) }
func BenchmarkBruteForceBoxes_100000(b *testing.B) { benchBoxes(b, NewBruteForceBoxes(), 100000) }

// --- Build ---

func BenchmarkMortonHierarchyBuild_100000(b *testing.B) {
	boxes := randomBoxes(rand.New(rand.NewSource(42)), 100000, 0.01)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := NewMortonHierarchy().Build(boxes); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRadixGridBuild_100000(b *testing.B) {
	cloud, _ := benchCloud(100000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := NewRadixGrid().Build(cloud, 0.05); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Nearest ---

func benchNearest(b *testing.B, s NearestSearcher, n int) {
	b.Helper()
	cloud, queries := benchCloud(n)
	if err := s.Build(cloud); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Nearest(queries[i%len(queries)])
	}
}

func BenchmarkBruteForceNearest_10000(b *testing.B) { benchNearest(b, NewBruteForceNearest(), 10000) }
func BenchmarkKDTreeNearest_10000(b *testing.B) {
	benchNearest(b, NewKDTreeNearest(DefaultLeafSize), 10000)
}
