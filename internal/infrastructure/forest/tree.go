package forest

import "math/rand"

// node is a single decision tree node. Leaves have Feature == -1.
type node struct {
	Feature int       `json:"f"`
	Left    int       `json:"l,omitempty"` // taken when the feature is false
	Right   int       `json:"r,omitempty"` // taken when the feature is true
	Dist    []float64 `json:"d,omitempty"` // class probabilities at a leaf
}

// Tree is a CART classification tree over binary features, stored as a flat node list
type Tree struct {
	Nodes []node `json:"nodes"`
}

// predict returns the class distribution of the leaf x falls into
func (t *Tree) predict(x []bool) []float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Dist
		}
		if n.Feature < len(x) && x[n.Feature] {
			i = n.Right
		} else {
			i = n.Left
		}
	}
}

type treeBuilder struct {
	x               [][]bool
	y               []int
	numClasses      int
	maxFeatures     int
	minSamplesSplit int
	maxDepth        int
	rng             *rand.Rand
	nodes           []node
}

func (b *treeBuilder) build(idx []int, depth int) int {
	counts := b.classCounts(idx)
	self := len(b.nodes)
	b.nodes = append(b.nodes, node{Feature: -1})

	if isPure(counts) || len(idx) < b.minSamplesSplit || (b.maxDepth > 0 && depth >= b.maxDepth) {
		b.nodes[self].Dist = distribution(counts, len(idx))
		return self
	}

	feature, ok := b.bestSplit(idx, counts)
	if !ok {
		b.nodes[self].Dist = distribution(counts, len(idx))
		return self
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] {
			right = append(right, i)
		} else {
			left = append(left, i)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.nodes[self] = node{Feature: feature, Left: l, Right: r}
	return self
}

// bestSplit evaluates features in random order. At least maxFeatures are examined,
// and the search continues past that only until a valid split is found.
func (b *treeBuilder) bestSplit(idx []int, parent []int) (int, bool) {
	numFeatures := len(b.x[idx[0]])
	order := b.rng.Perm(numFeatures)

	bestFeature := -1
	bestImpurity := 0.0
	total := float64(len(idx))

	for visited, f := range order {
		if visited >= b.maxFeatures && bestFeature >= 0 {
			break
		}

		rightCounts := make([]int, b.numClasses)
		nRight := 0
		for _, i := range idx {
			if b.x[i][f] {
				rightCounts[b.y[i]]++
				nRight++
			}
		}
		nLeft := len(idx) - nRight
		if nRight == 0 || nLeft == 0 {
			continue
		}

		leftCounts := make([]int, b.numClasses)
		for c := range parent {
			leftCounts[c] = parent[c] - rightCounts[c]
		}

		impurity := float64(nLeft)/total*gini(leftCounts, nLeft) +
			float64(nRight)/total*gini(rightCounts, nRight)
		if bestFeature < 0 || impurity < bestImpurity {
			bestFeature = f
			bestImpurity = impurity
		}
	}

	return bestFeature, bestFeature >= 0
}

func (b *treeBuilder) classCounts(idx []int) []int {
	counts := make([]int, b.numClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	return counts
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func distribution(counts []int, n int) []float64 {
	dist := make([]float64, len(counts))
	if n == 0 {
		return dist
	}
	for c, k := range counts {
		dist[c] = float64(k) / float64(n)
	}
	return dist
}
