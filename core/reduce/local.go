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
	"math"
	"runtime"

	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// LocalBackend - reduces in process. The region is split into bands of rows
// (tiles) which are reduced concurrently and merged in tile order, so results
// don't depend on goroutine scheduling.
type LocalBackend struct {
	// Max tiles being reduced at once, <= 0 means GOMAXPROCS
	Workers int
	Log     logger.ILogger
}

func MakeLocalBackend(workers int, log logger.ILogger) *LocalBackend {
	return &LocalBackend{Workers: workers, Log: log}
}

func (b *LocalBackend) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Stride - sampling step needed for a region at a scale and budget. Returns
// the step and whether it had to be widened beyond the scale's to fit.
func Stride(img *raster.Image, region raster.Rect, req Request) (int, bool, error) {
	stride := 1
	if req.Scale > 0 && img.Scale > 0 && req.Scale > img.Scale {
		stride = int(math.Round(req.Scale / img.Scale))
	}

	if req.MaxPixels <= 0 || sampledCount(region, stride) <= req.MaxPixels {
		return stride, false, nil
	}

	if !req.BestEffort {
		return 0, false, errors.Wrapf(ErrResourceExceeded, "region of %v pixels exceeds budget of %v", sampledCount(region, stride), req.MaxPixels)
	}

	// Sampling every s'th pixel in x and y divides the count by s^2
	stride = max(stride, int(math.Ceil(math.Sqrt(float64(region.Area())/float64(req.MaxPixels)))))
	for sampledCount(region, stride) > req.MaxPixels {
		stride++
	}
	return stride, true, nil
}

func sampledCount(region raster.Rect, stride int) int64 {
	cols := (region.Width + stride - 1) / stride
	rows := (region.Height + stride - 1) / stride
	return int64(cols) * int64(rows)
}

func (b *LocalBackend) ReduceRegion(ctx context.Context, img *raster.Image, req Request) (Result, error) {
	if err := CheckImage(img); err != nil {
		return Result{}, err
	}

	if req.Reducer < Mean || req.Reducer > Max {
		return Result{}, errors.Wrapf(ErrInvalidInput, "unknown reducer %v", req.Reducer)
	}

	region, err := ResolveRegion(img, req.Region)
	if err != nil {
		return Result{}, err
	}

	stride, approximate, err := Stride(img, region, req)
	if err != nil {
		return Result{}, err
	}

	if approximate && b.Log != nil {
		b.Log.Infof("Reducing %v of image %v with stride %v to stay within %v pixels", req.Reducer, img.ID, stride, req.MaxPixels)
	}

	rows := make([]int, 0, (region.Height+stride-1)/stride)
	for y := region.Y; y < region.Y+region.Height; y += stride {
		rows = append(rows, y)
	}

	tileCount := b.workers() * max(1, req.TileScale)
	tileCount = min(tileCount, len(rows))
	rowsPerTile := (len(rows) + tileCount - 1) / tileCount

	partials := make([]*accumulator, 0, tileCount)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers())

	for start := 0; start < len(rows); start += rowsPerTile {
		acc := newAccumulator(img.BandCount(), req.Reducer)
		partials = append(partials, acc)

		tileRows := rows[start:min(start+rowsPerTile, len(rows))]
		group.Go(func() error {
			return reduceTile(groupCtx, img, region, tileRows, stride, req.Reducer, acc)
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	total := newAccumulator(img.BandCount(), req.Reducer)
	for _, acc := range partials {
		total.merge(acc)
	}

	return makeResult(img, req.Reducer, total, stride, approximate)
}

func reduceTile(ctx context.Context, img *raster.Image, region raster.Rect, rows []int, stride int, reducer Reducer, acc *accumulator) error {
	bands := img.BandCount()
	px := make([]float64, bands)
	delta := make([]float64, bands)

	for _, y := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		for x := region.X; x < region.X+region.Width; x += stride {
			i := y*img.Width + x

			if reducer == Min || reducer == Max {
				for c := 0; c < bands; c++ {
					if img.Valid[c][i] {
						acc.addBand(c, img.Data[c][i])
					}
				}
				continue
			}

			if !img.PixelValid(i) {
				continue
			}
			for c := 0; c < bands; c++ {
				px[c] = img.Data[c][i]
			}
			acc.add(px, delta)
		}
	}
	return nil
}

func makeResult(img *raster.Image, reducer Reducer, acc *accumulator, stride int, approximate bool) (Result, error) {
	result := Result{
		Reducer:     reducer,
		Bands:       append([]string{}, img.Bands...),
		Approximate: approximate,
		Stride:      stride,
		PixelCount:  acc.n,
	}

	switch reducer {
	case Mean:
		result.Vector = acc.mean
	case Covariance:
		result.Vector = acc.mean
		result.Matrix = acc.covariance()
	case Min, Max:
		result.PixelCount = 0
		for c, n := range acc.bandN {
			if n == 0 {
				return Result{}, errors.Wrapf(ErrInvalidInput, "band %v has no valid pixels in region", img.Bands[c])
			}
			result.PixelCount = max(result.PixelCount, n)
		}
		if reducer == Min {
			result.Vector = acc.min
		} else {
			result.Vector = acc.max
		}
		return result, nil
	}

	if acc.n == 0 {
		return Result{}, errors.Wrap(ErrInvalidInput, "region contains no valid pixels")
	}
	return result, nil
}
