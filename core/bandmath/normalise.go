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

// Per-pixel band arithmetic: min-max normalisation, vegetation and pigment
// indices for PACE OCI surface reflectance, and reflectance scaling.
package bandmath

import (
	"context"

	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Range - per-band min and max over a region
type Range struct {
	Bands       []string  `json:"bands"`
	Min         []float64 `json:"min"`
	Max         []float64 `json:"max"`
	Approximate bool      `json:"approximate"`
}

// BandRange - the min and max reductions are independent so they run at the same time
func BandRange(ctx context.Context, backend reduce.Backend, img *raster.Image, policy reduce.Policy) (Range, error) {
	if err := reduce.CheckImage(img); err != nil {
		return Range{}, err
	}

	var mins, maxs reduce.Result
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		req := policy.MakeRequest(reduce.Min, nil)
		req.Scale = img.Scale
		var err error
		mins, err = backend.ReduceRegion(groupCtx, img, req)
		return errors.Wrap(err, "failed to compute band minimums")
	})
	group.Go(func() error {
		req := policy.MakeRequest(reduce.Max, nil)
		req.Scale = img.Scale
		var err error
		maxs, err = backend.ReduceRegion(groupCtx, img, req)
		return errors.Wrap(err, "failed to compute band maximums")
	})

	if err := group.Wait(); err != nil {
		return Range{}, err
	}

	return Range{
		Bands:       append([]string{}, img.Bands...),
		Min:         mins.Vector,
		Max:         maxs.Vector,
		Approximate: mins.Approximate || maxs.Approximate,
	}, nil
}

// Normalise - rescales every band to 0..1 using its min and max over the
// image bounds. A constant band (max == min) maps to 0 rather than NaN.
// Masked pixels stay masked.
func Normalise(ctx context.Context, backend reduce.Backend, img *raster.Image, policy reduce.Policy) (*raster.Image, error) {
	r, err := BandRange(ctx, backend, img, policy)
	if err != nil {
		return nil, err
	}

	return img.Map(func(b int, v float64) float64 {
		span := r.Max[b] - r.Min[b]
		if span == 0 {
			return 0
		}
		return (v - r.Min[b]) / span
	}), nil
}
