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

package reduce

import "math"

// accumulator - running statistics over a set of pixels. Mean and co-moments
// are updated with Welford's method and combined with the pairwise formula of
// Chan et al, so tiles can be reduced independently and merged.
type accumulator struct {
	n    int64
	mean []float64
	// Sum of (x_i - mean_i)(x_j - mean_j), covariance only
	comoment [][]float64

	// Per band, for min/max. Bands are counted separately as they can be
	// valid on different pixels.
	bandN []int64
	min   []float64
	max   []float64
}

func newAccumulator(bands int, reducer Reducer) *accumulator {
	acc := &accumulator{}

	switch reducer {
	case Mean:
		acc.mean = make([]float64, bands)
	case Covariance:
		acc.mean = make([]float64, bands)
		acc.comoment = make([][]float64, bands)
		for c := range acc.comoment {
			acc.comoment[c] = make([]float64, bands)
		}
	case Min, Max:
		acc.bandN = make([]int64, bands)
		acc.min = make([]float64, bands)
		acc.max = make([]float64, bands)
		for c := 0; c < bands; c++ {
			acc.min[c] = math.Inf(1)
			acc.max[c] = math.Inf(-1)
		}
	}
	return acc
}

// add - one pixel valid in every band
func (acc *accumulator) add(px []float64, delta []float64) {
	acc.n++
	n := float64(acc.n)

	for i, x := range px {
		delta[i] = x - acc.mean[i]
		acc.mean[i] += delta[i] / n
	}

	if acc.comoment == nil {
		return
	}

	// Upper triangle, mirrored when the result is produced
	for i := range px {
		row := acc.comoment[i]
		for j := i; j < len(px); j++ {
			row[j] += delta[i] * (px[j] - acc.mean[j])
		}
	}
}

func (acc *accumulator) addBand(band int, v float64) {
	acc.bandN[band]++
	acc.min[band] = math.Min(acc.min[band], v)
	acc.max[band] = math.Max(acc.max[band], v)
}

// merge - folds other into acc
func (acc *accumulator) merge(other *accumulator) {
	for c := range acc.bandN {
		acc.bandN[c] += other.bandN[c]
		acc.min[c] = math.Min(acc.min[c], other.min[c])
		acc.max[c] = math.Max(acc.max[c], other.max[c])
	}

	if other.n == 0 {
		return
	}
	if acc.n == 0 {
		acc.n = other.n
		copy(acc.mean, other.mean)
		for i := range acc.comoment {
			copy(acc.comoment[i], other.comoment[i])
		}
		return
	}

	na := float64(acc.n)
	nb := float64(other.n)
	n := na + nb

	delta := make([]float64, len(acc.mean))
	for i := range acc.mean {
		delta[i] = other.mean[i] - acc.mean[i]
	}

	for i := range acc.comoment {
		for j := i; j < len(acc.comoment); j++ {
			acc.comoment[i][j] += other.comoment[i][j] + delta[i]*delta[j]*na*nb/n
		}
	}

	for i := range acc.mean {
		acc.mean[i] += delta[i] * nb / n
	}
	acc.n += other.n
}

// covariance - sample covariance, divisor n-1 (1 for a single pixel)
func (acc *accumulator) covariance() [][]float64 {
	div := float64(acc.n - 1)
	if acc.n <= 1 {
		div = 1
	}

	p := len(acc.comoment)
	result := make([][]float64, p)
	for i := range result {
		result[i] = make([]float64, p)
	}

	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			v := acc.comoment[i][j] / div
			result[i][j] = v
			result[j][i] = v
		}
	}
	return result
}
