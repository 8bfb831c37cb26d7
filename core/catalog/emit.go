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

package catalog

import (
	"context"
	"time"

	"github.com/pixlise/hyperspectral/core/bandmath"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/spectral"
	"github.com/pixlise/hyperspectral/core/utils"
)

// EMITCollection - EMIT L2A surface reflectance scenes
const EMITCollection = "EMIT/L2A/RFL"

func emitCollection(ctx context.Context, cat Catalog, roi raster.Rect, from time.Time, to time.Time) (Collection, error) {
	return FromCatalog(ctx, cat, Query{Collection: EMITCollection, From: from, To: to, Bounds: &roi})
}

func dayRange(date time.Time) (time.Time, time.Time) {
	return date, date.AddDate(0, 0, 1)
}

// composite - median of the collection scaled to int16 reflectance x 10000
func composite(ctx context.Context, coll Collection, clip *raster.Rect) (*raster.Image, error) {
	img, err := coll.Median(ctx, clip)
	if err != nil {
		return nil, err
	}
	return bandmath.ScaleToInt16(img), nil
}

// EMITSurfaceReflectance - the 243 good bands of all EMIT scenes overlapping
// roi on the given day, median composited
func EMITSurfaceReflectance(ctx context.Context, cat Catalog, roi raster.Rect, date time.Time) (*raster.Image, error) {
	from, to := dayRange(date)
	coll, err := emitCollection(ctx, cat, roi, from, to)
	if err != nil {
		return nil, err
	}

	img, err := composite(ctx, coll.Select(spectral.EMITGoodBandIndices()...), nil)
	if err != nil {
		return nil, err
	}
	return img.WithTimeStart(from.UnixMilli()), nil
}

// EMITSurfaceReflectanceRange - as EMITSurfaceReflectance over [from, to),
// clipped to roi
func EMITSurfaceReflectanceRange(ctx context.Context, cat Catalog, roi raster.Rect, from time.Time, to time.Time) (*raster.Image, error) {
	coll, err := emitCollection(ctx, cat, roi, from, to)
	if err != nil {
		return nil, err
	}
	return composite(ctx, coll.Select(spectral.EMITGoodBandIndices()...), &roi)
}

// EMITFull - all 285 bands, including the water absorption ones
func EMITFull(ctx context.Context, cat Catalog, roi raster.Rect, date time.Time) (*raster.Image, error) {
	from, to := dayRange(date)
	coll, err := emitCollection(ctx, cat, roi, from, to)
	if err != nil {
		return nil, err
	}
	return composite(ctx, coll.Select(allEMITBands()...), nil)
}

// EMITFullRange - all 285 bands over [from, to), clipped to roi
func EMITFullRange(ctx context.Context, cat Catalog, roi raster.Rect, from time.Time, to time.Time) (*raster.Image, error) {
	coll, err := emitCollection(ctx, cat, roi, from, to)
	if err != nil {
		return nil, err
	}
	return composite(ctx, coll.Select(allEMITBands()...), &roi)
}

// EMITRescaled - every EMIT scene, each scaled to int16 reflectance x 10000
// and keeping its acquisition time
func EMITRescaled(ctx context.Context, cat Catalog) (Collection, error) {
	coll, err := FromCatalog(ctx, cat, Query{Collection: EMITCollection})
	if err != nil {
		return coll, err
	}

	return coll.Select(allEMITBands()...).Map(func(img *raster.Image) (*raster.Image, error) {
		return bandmath.ScaleToInt16(img), nil
	}), nil
}

func allEMITBands() []int {
	return utils.MakeRange(0, spectral.BandCount(spectral.EMIT)-1)
}
