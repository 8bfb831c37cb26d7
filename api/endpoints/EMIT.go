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

package endpoints

import (
	"fmt"
	"path"
	"strconv"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/catalog"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/spectral"
)

type compositeResponse struct {
	Bands            int    `json:"bands"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	ValidPixels      int    `json:"validPixels"`
	TimeStartUnixSec int64  `json:"timeStartUnixSec,omitempty"`
	OutputDir        string `json:"outputDir,omitempty"`
}

type timeSeriesPoint struct {
	SceneID          string  `json:"sceneId"`
	TimeStartUnixSec int64   `json:"timeStartUnixSec"`
	Value            float64 `json:"value"`
}

func registerEMITHandler(router *apiRouter.ApiObjectRouter) {
	const pathPrefix = "emit"

	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix)+"/reflectance", "GET", emitReflectanceGet)
	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix)+"/timeseries", "GET", emitTimeSeriesGet)
}

// Composite over roi for ?date= (single day, unclipped) or ?from=&to= (clipped
// to roi). ?full=true keeps the water absorption bands.
func emitReflectanceGet(params handlers.ApiHandlerParams) (interface{}, error) {
	roi, err := parseRegion(params.PathParams)
	if err != nil {
		return nil, err
	}
	if roi == nil {
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("x, y, w, h are required"))
	}

	date, err := parseDate(params.PathParams, "date")
	if err != nil {
		return nil, err
	}
	from, err := parseDate(params.PathParams, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(params.PathParams, "to")
	if err != nil {
		return nil, err
	}

	full := params.PathParams["full"] == "true"
	ctx := params.Request.Context()
	cat := params.Svcs.Catalog

	var img *raster.Image
	switch {
	case !date.IsZero() && full:
		img, err = catalog.EMITFull(ctx, cat, *roi, date)
	case !date.IsZero():
		img, err = catalog.EMITSurfaceReflectance(ctx, cat, *roi, date)
	case !from.IsZero() && !to.IsZero() && full:
		img, err = catalog.EMITFullRange(ctx, cat, *roi, from, to)
	case !from.IsZero() && !to.IsZero():
		img, err = catalog.EMITSurfaceReflectanceRange(ctx, cat, *roi, from, to)
	default:
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("either date or from and to are required"))
	}
	if err != nil {
		return nil, err
	}

	result := compositeResponse{
		Bands:       img.BandCount(),
		Width:       img.Width,
		Height:      img.Height,
		ValidPixels: img.ValidPixelCount(img.Bounds()),
	}
	if ms, ok := img.TimeStart(); ok {
		result.TimeStartUnixSec = ms / 1000
	}

	if params.PathParams["save"] == "true" {
		when := params.PathParams["date"]
		if date.IsZero() {
			when = params.PathParams["from"] + "_" + params.PathParams["to"]
		}

		result.OutputDir = path.Join("emit", fmt.Sprintf("%v_%v_%v_%v", roi.X, roi.Y, roi.Width, roi.Height), when)
		if err := raster.SaveImage(params.Svcs.FS, params.Svcs.Config.ExportBucket, result.OutputDir, img, 1); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// One band at grid pixel ?x=&y= across every EMIT scene covering it, as
// reflectance x 10000
func emitTimeSeriesGet(params handlers.ApiHandlerParams) (interface{}, error) {
	band := params.PathParams["band"]
	if _, err := spectral.BandIndex(spectral.EMIT, band); err != nil {
		return nil, errorwithstatus.MakeBadRequestError(err)
	}

	coords := []int{}
	for _, name := range []string{"x", "y"} {
		v, err := strconv.Atoi(params.PathParams[name])
		if err != nil {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("%v must be an integer", name))
		}
		coords = append(coords, v)
	}
	x, y := coords[0], coords[1]

	ctx := params.Request.Context()
	coll, err := catalog.EMITRescaled(ctx, params.Svcs.Catalog)
	if err != nil {
		return nil, err
	}
	coll = coll.FilterBounds(raster.Rect{X: x, Y: y, Width: 1, Height: 1})

	images, err := coll.Images(ctx)
	if err != nil {
		return nil, err
	}

	result := []timeSeriesPoint{}
	for c, scene := range coll.Scenes() {
		img := images[c]
		b := img.BandIndex(band)
		if b < 0 {
			return nil, fmt.Errorf("scene %v has no band %v", scene.ID, band)
		}

		v, ok := img.At(b, x-scene.Footprint.X, y-scene.Footprint.Y)
		if !ok {
			continue
		}
		result = append(result, timeSeriesPoint{SceneID: scene.ID, TimeStartUnixSec: scene.TimeStartUnixSec, Value: v})
	}
	return result, nil
}
