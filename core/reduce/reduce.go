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

// Region reductions over multi-band images. A Backend computes a statistic of
// every band (or band pair) over the valid pixels of a region, within a pixel
// budget. The in-process LocalBackend is the reference implementation, other
// packages wrap a Backend to add caching or metrics.
package reduce

import (
	"context"
	"fmt"

	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pkg/errors"
)

// ErrInvalidInput - returned straight away for a nil image, no bands, or a
// region that doesn't contain any valid pixels
var ErrInvalidInput = errors.New("invalid input")

// ErrResourceExceeded - the region needs more pixels than the budget allows
// and best effort was not requested
var ErrResourceExceeded = errors.New("resource exceeded")

type Reducer int

const (
	Mean Reducer = iota
	Covariance
	Min
	Max
)

func (r Reducer) String() string {
	switch r {
	case Mean:
		return "mean"
	case Covariance:
		return "covariance"
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return fmt.Sprintf("reducer(%d)", int(r))
}

type Request struct {
	Reducer Reducer
	// nil means the image bounds
	Region *raster.Rect
	// Sampling scale in metres, 0 means the image's native scale
	Scale float64
	// Upper bound on pixels sampled, 0 means unbounded
	MaxPixels int64
	// If the budget is exceeded, sample sparser instead of failing
	BestEffort bool
	// Higher values split the region into more, smaller tiles
	TileScale int
}

type Result struct {
	Reducer Reducer
	Bands   []string

	// Per-band values for Mean, Min and Max. Covariance also fills this with
	// the band means the matrix was centred on.
	Vector []float64
	// Band x band matrix, Covariance only
	Matrix [][]float64

	// Number of valid pixels that contributed
	PixelCount int64
	// True if pixels were skipped to stay within MaxPixels
	Approximate bool
	// Sampling step in pixels along both axes
	Stride int
}

// Backend - anything that can reduce a region of an image
type Backend interface {
	ReduceRegion(ctx context.Context, img *raster.Image, req Request) (Result, error)
}

// Policy - the budget settings applied to every request a component makes
type Policy struct {
	MaxPixels  int64 `json:"maxPixels"`
	BestEffort bool  `json:"bestEffort"`
	TileScale  int   `json:"tileScale"`
}

// DefaultPolicy - 1e9 pixels, best effort, tile scale 16
var DefaultPolicy = Policy{MaxPixels: 1e9, BestEffort: true, TileScale: 16}

// MakeRequest - builds a request for reducer over region using this policy at the image's native scale
func (p Policy) MakeRequest(reducer Reducer, region *raster.Rect) Request {
	return Request{
		Reducer:    reducer,
		Region:     region,
		MaxPixels:  p.MaxPixels,
		BestEffort: p.BestEffort,
		TileScale:  p.TileScale,
	}
}

// ResolveRegion - the part of region (or the whole image if nil) inside the image
func ResolveRegion(img *raster.Image, region *raster.Rect) (raster.Rect, error) {
	if region == nil {
		return img.Bounds(), nil
	}

	r := region.Intersect(img.Bounds())
	if r.Empty() {
		return r, errors.Wrapf(ErrInvalidInput, "region %+v is outside image bounds %+v", *region, img.Bounds())
	}
	return r, nil
}

// CheckImage - common validation of images handed to reductions
func CheckImage(img *raster.Image) error {
	if img == nil {
		return errors.Wrap(ErrInvalidInput, "nil image")
	}
	if img.BandCount() <= 0 {
		return errors.Wrap(ErrInvalidInput, "image has no bands")
	}
	return nil
}
