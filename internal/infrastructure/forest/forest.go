package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Config holds random forest hyperparameters
type Config struct {
	NumTrees        int
	MaxFeatures     int // 0 means sqrt(number of features)
	MinSamplesSplit int
	MaxDepth        int // 0 means unlimited
	Seed            int64
}

// DefaultConfig matches the trainer defaults: 200 trees, seed 42
func DefaultConfig() Config {
	return Config{
		NumTrees:        200,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

// RandomForest is a bagged ensemble of CART trees with per-split feature sampling
type RandomForest struct {
	Classes     []string `json:"classes"`
	NumFeatures int      `json:"numFeatures"`
	Trees       []Tree   `json:"trees"`
}

// Train fits a forest on binary feature rows and their labels
func Train(x [][]bool, labels []string, cfg Config) (*RandomForest, error) {
	if len(x) == 0 {
		return nil, errors.New("no training samples")
	}
	if len(x) != len(labels) {
		return nil, fmt.Errorf("got %d samples and %d labels", len(x), len(labels))
	}
	numFeatures := len(x[0])
	if numFeatures == 0 {
		return nil, errors.New("samples have no features")
	}
	for i, row := range x {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("sample %d has %d features, want %d", i, len(row), numFeatures)
		}
	}

	if cfg.NumTrees <= 0 {
		cfg.NumTrees = DefaultConfig().NumTrees
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	maxFeatures := cfg.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(numFeatures)))
	}
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	if maxFeatures > numFeatures {
		maxFeatures = numFeatures
	}

	classes, y := indexLabels(labels)
	rng := rand.New(rand.NewSource(cfg.Seed))

	f := &RandomForest{
		Classes:     classes,
		NumFeatures: numFeatures,
		Trees:       make([]Tree, 0, cfg.NumTrees),
	}

	n := len(x)
	for t := 0; t < cfg.NumTrees; t++ {
		sample := make([]int, n)
		for i := range sample {
			sample[i] = rng.Intn(n)
		}

		b := &treeBuilder{
			x:               x,
			y:               y,
			numClasses:      len(classes),
			maxFeatures:     maxFeatures,
			minSamplesSplit: cfg.MinSamplesSplit,
			maxDepth:        cfg.MaxDepth,
			rng:             rng,
		}
		b.build(sample, 0)
		f.Trees = append(f.Trees, Tree{Nodes: b.nodes})
	}

	return f, nil
}

// PredictProba averages the leaf distributions of every tree
func (f *RandomForest) PredictProba(x []bool) []float64 {
	proba := make([]float64, len(f.Classes))
	if len(f.Trees) == 0 {
		return proba
	}
	for i := range f.Trees {
		for c, p := range f.Trees[i].predict(x) {
			proba[c] += p
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.Trees))
	}
	return proba
}

// Predict returns the most probable class; ties go to the lexically first class
func (f *RandomForest) Predict(x []bool) string {
	proba := f.PredictProba(x)
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.Classes[best]
}

// indexLabels maps labels to indices into a sorted class list
func indexLabels(labels []string) ([]string, []int) {
	set := make(map[string]struct{})
	for _, l := range labels {
		set[l] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for l := range set {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	y := make([]int, len(labels))
	for i, l := range labels {
		y[i] = index[l]
	}
	return classes, y
}
