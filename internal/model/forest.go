package model

import (
	"errors"
	"fmt"
	"math"
)

const leafNode = -1

// Tree is a fitted binary decision tree in array form.
// Node i splits on Feature[i] at Threshold[i]; rows with x <= threshold go to
// ChildrenLeft[i]. A node whose children are -1 is a leaf and Value[i] holds the
// per-class sample weights that reached it.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// RandomForest averages the leaf class distributions of its trees.
type RandomForest struct {
	NFeatures int    `json:"n_features"`
	Classes   []int  `json:"classes"`
	Trees     []Tree `json:"trees"`
}

func (t *Tree) validate(nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree arrays have mismatched lengths (nodes=%d)", n)
	}
	for i := 0; i < n; i++ {
		left, right := t.ChildrenLeft[i], t.ChildrenRight[i]
		if left == leafNode || right == leafNode {
			if left != right {
				return fmt.Errorf("node %d has only one child", i)
			}
			if len(t.Value[i]) != nClasses {
				return fmt.Errorf("leaf %d has %d class weights, want %d", i, len(t.Value[i]), nClasses)
			}
			continue
		}
		// children are always stored after their parent
		if left <= i || left >= n || right <= i || right >= n {
			return fmt.Errorf("node %d has out of range children (%d, %d)", i, left, right)
		}
		if f := t.Feature[i]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d, model has %d features", i, f, nFeatures)
		}
	}
	return nil
}

// leaf walks the tree for row and returns the class weights of the reached leaf.
func (t *Tree) leaf(row []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leafNode {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func (f *RandomForest) validate() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("invalid n_features %d", f.NFeatures)
	}
	if len(f.Classes) == 0 {
		return errors.New("classifier has no classes")
	}
	if len(f.Trees) == 0 {
		return errors.New("classifier has no trees")
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(f.NFeatures, len(f.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// PredictProba returns the mean normalised class distribution over all trees.
func (f *RandomForest) PredictProba(row []float64) ([]float64, error) {
	if len(row) != f.NFeatures {
		return nil, fmt.Errorf("X has %d features, but the classifier is expecting %d features as input", len(row), f.NFeatures)
	}
	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("input feature %d is not a finite number", i)
		}
	}

	proba := make([]float64, len(f.Classes))
	for i := range f.Trees {
		weights := f.Trees[i].leaf(row)
		var total float64
		for _, w := range weights {
			total += w
		}
		if total == 0 {
			continue
		}
		for c, w := range weights {
			proba[c] += w / total
		}
	}

	n := float64(len(f.Trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

// Predict returns the class with the highest mean probability. Ties resolve to
// the lowest class index.
func (f *RandomForest) Predict(row []float64) (int, error) {
	proba, err := f.PredictProba(row)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return f.Classes[best], nil
}
