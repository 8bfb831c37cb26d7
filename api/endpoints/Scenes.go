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
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/api/services"
	"github.com/pixlise/hyperspectral/core/catalog"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/raster"
)

const sceneIdentifier = "id"

// Dates in query params can be either of these
var dateLayouts = []string{"2006-01-02", time.RFC3339}

type sceneListResponse struct {
	Scenes []catalog.Scene `json:"scenes"`
}

func registerSceneHandler(router *apiRouter.ApiObjectRouter) {
	const pathPrefix = "scenes"

	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix), "GET", sceneList)
	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix, sceneIdentifier), "GET", sceneGet)
}

func parseDate(params map[string]string, name string) (time.Time, error) {
	val := params[name]
	if len(val) <= 0 {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errorwithstatus.MakeBadRequestError(fmt.Errorf("%v: %v is not a date", name, val))
}

// parseRegion - reads x, y, w, h query params. Returns nil if none are set.
func parseRegion(params map[string]string) (*raster.Rect, error) {
	names := []string{"x", "y", "w", "h"}
	vals := make([]int, len(names))

	count := 0
	for c, name := range names {
		val, ok := params[name]
		if !ok {
			continue
		}

		v, err := strconv.Atoi(val)
		if err != nil {
			return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("%v: %v is not an integer", name, val))
		}
		vals[c] = v
		count++
	}

	if count == 0 {
		return nil, nil
	}
	if count != len(names) {
		return nil, errorwithstatus.MakeBadRequestError(fmt.Errorf("region needs all of %v", names))
	}

	return &raster.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// loadSceneImage - catalog entry and raster for a scene ID
func loadSceneImage(ctx context.Context, svcs *services.APIServices, id string) (catalog.Scene, *raster.Image, error) {
	scene, err := svcs.Catalog.Get(ctx, id)
	if err != nil {
		return scene, nil, err
	}

	img, err := svcs.Catalog.Load(ctx, scene)
	if err != nil {
		return scene, nil, err
	}

	svcs.Log.Debugf("Loaded scene %v: %v bands, %vx%v", id, img.BandCount(), img.Width, img.Height)
	return scene, img, nil
}

func sceneList(params handlers.ApiHandlerParams) (interface{}, error) {
	from, err := parseDate(params.PathParams, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(params.PathParams, "to")
	if err != nil {
		return nil, err
	}
	bounds, err := parseRegion(params.PathParams)
	if err != nil {
		return nil, err
	}

	q := catalog.Query{
		Collection: params.PathParams["collection"],
		From:       from,
		To:         to,
		Bounds:     bounds,
	}

	scenes, err := params.Svcs.Catalog.Find(params.Request.Context(), q)
	if err != nil {
		return nil, err
	}

	return sceneListResponse{Scenes: scenes}, nil
}

func sceneGet(params handlers.ApiHandlerParams) (interface{}, error) {
	return params.Svcs.Catalog.Get(params.Request.Context(), params.PathParams[sceneIdentifier])
}
