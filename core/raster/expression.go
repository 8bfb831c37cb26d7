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

package raster

import (
	"fmt"
	"math"
)

// Expression - computes a single output band from named input bands. vars maps
// the variable names fn sees to band names of the image. A pixel is computed
// only where every referenced band is valid, and fn returning a non-finite
// value (eg a zero denominator) leaves the pixel invalid.
func (img *Image) Expression(outName string, vars map[string]string, fn func(v map[string]float64) float64) (*Image, error) {
	if len(outName) <= 0 {
		return nil, fmt.Errorf("empty output band name")
	}

	names := make([]string, 0, len(vars))
	idxs := make([]int, 0, len(vars))
	for name, band := range vars {
		idx := img.BandIndex(band)
		if idx < 0 {
			return nil, fmt.Errorf("expression variable %v refers to band %v which is not in image", name, band)
		}
		names = append(names, name)
		idxs = append(idxs, idx)
	}

	n := img.PixelCount()
	data := make([]float64, n)
	valid := make([]bool, n)
	vals := make(map[string]float64, len(names))

	for i := 0; i < n; i++ {
		ok := true
		for c, idx := range idxs {
			if !img.Valid[idx][i] {
				ok = false
				break
			}
			vals[names[c]] = img.Data[idx][i]
		}
		if !ok {
			continue
		}

		out := fn(vals)
		if math.IsNaN(out) || math.IsInf(out, 0) {
			continue
		}
		data[i] = out
		valid[i] = true
	}

	result := img.withMeta()
	result.ID = ""
	result.Bands = []string{outName}
	result.Data = [][]float64{data}
	result.Valid = [][]bool{valid}
	return result, nil
}

// NormalizedDifference - (a-b)/(a+b) as a single band called "nd"
func (img *Image) NormalizedDifference(a, b string) (*Image, error) {
	return img.Expression("nd", map[string]string{"a": a, "b": b}, func(v map[string]float64) float64 {
		return (v["a"] - v["b"]) / (v["a"] + v["b"])
	})
}
