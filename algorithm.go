package spatial

import (
	"context"
	"fmt"
)

// Algorithm selects a concrete searcher in the factory functions.
type Algorithm string

const (
	// AlgorithmRecommended resolves to the best available searcher for the
	// requested capability: RadixGrid for fixed-radius queries,
	// MortonHierarchy for box overlap, brute force for nearest neighbor.
	AlgorithmRecommended     Algorithm = "recommended"
	AlgorithmBruteForce      Algorithm = "brute_force"
	AlgorithmRadixGrid       Algorithm = "radix_grid"
	AlgorithmMortonHierarchy Algorithm = "morton_hierarchy"
	AlgorithmBoxBruteForce   Algorithm = "bounding_box_brute_force"
	AlgorithmKDTree          Algorithm = "kdtree"
)

// Capability names used in log records and error messages.
const (
	capabilityFixedRadius = "fixed_radius"
	capabilityNearest     = "nearest"
	capabilityBox         = "box_overlap"
)

// selectFixedRadius resolves AlgorithmRecommended and rejects algorithms that
// cannot answer fixed-radius queries.
func selectFixedRadius(algo Algorithm) (Algorithm, error) {
	switch algo {
	case AlgorithmRecommended:
		return AlgorithmRadixGrid, nil
	case AlgorithmBruteForce, AlgorithmRadixGrid, AlgorithmMortonHierarchy,
		AlgorithmBoxBruteForce, AlgorithmKDTree:
		return algo, nil
	}
	return "", unknownAlgorithm(algo, capabilityFixedRadius)
}

func selectNearest(algo Algorithm) (Algorithm, error) {
	switch algo {
	case AlgorithmRecommended:
		return AlgorithmBruteForce, nil
	case AlgorithmBruteForce, AlgorithmKDTree:
		return algo, nil
	}
	return "", unknownAlgorithm(algo, capabilityNearest)
}

func selectBox(algo Algorithm) (Algorithm, error) {
	switch algo {
	case AlgorithmRecommended:
		return AlgorithmMortonHierarchy, nil
	case AlgorithmBruteForce:
		return AlgorithmBoxBruteForce, nil
	case AlgorithmMortonHierarchy, AlgorithmBoxBruteForce:
		return algo, nil
	}
	return "", unknownAlgorithm(algo, capabilityBox)
}

func unknownAlgorithm(algo Algorithm, capability string) error {
	return fmt.Errorf("%w %q for %s searcher", ErrUnknownAlgorithm, algo, capability)
}

// NewFixedRadiusSearcher returns a new, unbuilt FixedRadiusSearcher for
// cfg.Algorithm. Box-overlap algorithms are served through OverlapSearcher.
// An invalid config is reported to cfg.Reporter and never returns.
func NewFixedRadiusSearcher(cfg Config) FixedRadiusSearcher {
	switch resolve(&cfg, capabilityFixedRadius, selectFixedRadius) {
	case AlgorithmRadixGrid:
		return NewRadixGrid()
	case AlgorithmBruteForce:
		return NewBruteForceFixedRadius()
	case AlgorithmMortonHierarchy:
		return NewOverlapSearcher(NewMortonHierarchy())
	case AlgorithmBoxBruteForce:
		return NewOverlapSearcher(NewBruteForceBoxes())
	default:
		return NewKDTreeFixedRadius(cfg.LeafSize)
	}
}

// NewNearestSearcher returns a new, unbuilt NearestSearcher for
// cfg.Algorithm. An invalid config is reported to cfg.Reporter and never
// returns.
func NewNearestSearcher(cfg Config) NearestSearcher {
	switch resolve(&cfg, capabilityNearest, selectNearest) {
	case AlgorithmKDTree:
		return NewKDTreeNearest(cfg.LeafSize)
	default:
		return NewBruteForceNearest()
	}
}

// NewBoxSearcher returns a new, unbuilt BoxSearcher for cfg.Algorithm.
// AlgorithmBruteForce is accepted as an alias of AlgorithmBoxBruteForce.
// An invalid config is reported to cfg.Reporter and never returns.
func NewBoxSearcher(cfg Config) BoxSearcher {
	switch resolve(&cfg, capabilityBox, selectBox) {
	case AlgorithmBoxBruteForce:
		return NewBruteForceBoxes()
	default:
		return NewMortonHierarchy()
	}
}

// resolve applies defaults, validates cfg and maps its Algorithm through
// sel. Failures go to cfg.Reporter.
func resolve(cfg *Config, capability string, sel func(Algorithm) (Algorithm, error)) Algorithm {
	applyDefaults(cfg)
	err := validateConfig(cfg)
	var algo Algorithm
	if err == nil {
		algo, err = sel(cfg.Algorithm)
	}
	if err != nil {
		cfg.Reporter.Fatal(err.Error())
		panic(err.Error())
	}
	cfg.Logger.LogResolve(context.Background(), capability, cfg.Algorithm, algo)
	return algo
}
