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
	"fmt"
	"math"

	"github.com/pixlise/hyperspectral/core/utils"
)

// VarianceReport - share of the total variance captured by each component.
// Percentages are keyed "01", "02"... and formatted with 2 decimals, the way
// they are stored as image properties.
type VarianceReport struct {
	Percentages map[string]string `json:"percentages"`
	Eigenvalues []float64         `json:"eigenvalues"`
	PixelCount  int64             `json:"pixelCount"`
	// Mean or covariance were computed from a subsample
	Approximate bool `json:"approximate"`
	// Zero total variance, or some components with zero variance
	Degenerate  bool     `json:"degenerate"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// ComponentKey - "01" for the first component
func ComponentKey(k int) string {
	return fmt.Sprintf("%02d", k+1)
}

func makeVarianceReport(values []float64) VarianceReport {
	report := VarianceReport{
		Percentages: map[string]string{},
		Eigenvalues: append([]float64{}, values...),
	}

	tol := zeroTolerance(values)

	// Covariance is positive semi-definite, anything negative is rounding noise
	total := 0.0
	for _, v := range values {
		if v > tol {
			total += v
		}
	}

	if total <= 0 {
		report.Degenerate = true
		report.Diagnostics = append(report.Diagnostics, "total variance is zero")
	}

	for k, v := range values {
		pct := 0.0
		if total > 0 && v > tol {
			pct = v / total * 100
		} else if total > 0 {
			report.Degenerate = true
			report.Diagnostics = append(report.Diagnostics, fmt.Sprintf("component %v has zero variance", k+1))
		}
		report.Percentages[ComponentKey(k)] = fmt.Sprintf("%.2f", pct)
	}

	return report
}

// Keys - component keys in order
func (r VarianceReport) Keys() []string {
	return utils.GetSortedMapKeys(r.Percentages)
}

// Sum - total of the formatted percentages, 100 give or take rounding
func (r VarianceReport) Sum() float64 {
	sum := 0.0
	for _, v := range r.Percentages {
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil && !math.IsNaN(f) {
			sum += f
		}
	}
	return sum
}
