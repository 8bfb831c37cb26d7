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

import (
	"context"
	"time"

	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reductionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "reduction_duration_seconds",
		Help: "Duration of region reductions.",
	}, []string{"reducer"})
	reductionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reductions_total",
		Help: "Number of region reductions by outcome.",
	}, []string{"reducer", "outcome"})
	reductionPixels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reduction_pixels_total",
		Help: "Number of valid pixels reduced.",
	}, []string{"reducer"})
)

// Outcome label values
const (
	OutcomeOK          = "ok"
	OutcomeApproximate = "approximate"
	OutcomeError       = "error"
)

// InstrumentedBackend - records prometheus metrics for every reduction made
// through the wrapped backend
type InstrumentedBackend struct {
	Backend Backend
}

func (b InstrumentedBackend) ReduceRegion(ctx context.Context, img *raster.Image, req Request) (Result, error) {
	start := time.Now()
	result, err := b.Backend.ReduceRegion(ctx, img, req)

	name := req.Reducer.String()
	reductionDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	} else if result.Approximate {
		outcome = OutcomeApproximate
	}
	reductionsTotal.WithLabelValues(name, outcome).Inc()

	if err == nil {
		reductionPixels.WithLabelValues(name).Add(float64(result.PixelCount))
	}
	return result, err
}
