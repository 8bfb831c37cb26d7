// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package pca

import (
	"cmp"
	"math"

	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Eigen - eigenvalues in descending order, Vectors[k] is the unit
// eigenvector for Values[k]
type Eigen struct {
	Values  []float64
	Vectors [][]float64
}

// Eigendecompose - eigen analysis of a symmetric matrix (a covariance matrix).
// gonum returns eigenvalues in ascending order, these are re-sorted so the
// largest comes first. Each eigenvector's sign is chosen so its largest
// magnitude element is positive, which keeps components stable across runs.
// Singular matrices are fine, they just produce zero eigenvalues.
func Eigendecompose(matrix [][]float64) (Eigen, error) {
	p := len(matrix)
	if p <= 0 {
		return Eigen{}, errors.Wrap(reduce.ErrInvalidInput, "empty matrix")
	}

	sym := mat.NewSymDense(p, nil)
	for i, row := range matrix {
		if len(row) != p {
			return Eigen{}, errors.Wrapf(reduce.ErrInvalidInput, "matrix row %v has %v columns, expected %v", i, len(row), p)
		}
		for j := i; j < p; j++ {
			if math.IsNaN(row[j]) || math.IsInf(row[j], 0) {
				return Eigen{}, errors.Wrapf(reduce.ErrInvalidInput, "matrix contains non-finite value at %v,%v", i, j)
			}
			sym.SetSym(i, j, row[j])
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return Eigen{}, errors.New("eigendecomposition did not converge")
	}

	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	order := make([]int, p)
	for c := range order {
		order[c] = c
	}
	// Descending, equal eigenvalues keep gonum's order
	slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(values[b], values[a]) })

	result := Eigen{
		Values:  make([]float64, p),
		Vectors: make([][]float64, p),
	}

	for k, idx := range order {
		result.Values[k] = values[idx]

		vec := make([]float64, p)
		biggest := 0
		for j := 0; j < p; j++ {
			vec[j] = vectors.At(j, idx)
			if math.Abs(vec[j]) > math.Abs(vec[biggest]) {
				biggest = j
			}
		}
		if vec[biggest] < 0 {
			for j := range vec {
				vec[j] = -vec[j]
			}
		}
		result.Vectors[k] = vec
	}

	return result, nil
}

// zeroTolerance - eigenvalues at or below this are treated as zero: the usual
// numerical rank cutoff of largest eigenvalue * P * machine epsilon
func zeroTolerance(values []float64) float64 {
	biggest := 0.0
	for _, v := range values {
		biggest = math.Max(biggest, math.Abs(v))
	}
	return biggest * float64(len(values)) * 2.220446049250313e-16
}
