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
	"path"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/bandmath"
	"github.com/pixlise/hyperspectral/core/raster"
)

type normaliseRequest struct {
	// Write the normalised image to the export bucket
	Save bool `json:"save,omitempty"`
}

type normaliseResponse struct {
	Range     bandmath.Range `json:"range"`
	OutputDir string         `json:"outputDir,omitempty"`
}

// Normalised values are 0..1, stored x 10000
const normalisedValueScale = 10000

func registerNormaliseHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath("scenes", sceneIdentifier)+"/normalise", "POST", normalisePost)
}

func normalisePost(params handlers.ApiHandlerParams) (interface{}, error) {
	var req normaliseRequest
	if err := readBody(params.Request.Body, &req); err != nil {
		return nil, err
	}

	ctx := params.Request.Context()
	id := params.PathParams[sceneIdentifier]

	_, img, err := loadSceneImage(ctx, params.Svcs, id)
	if err != nil {
		return nil, err
	}

	policy := params.Svcs.Config.ReductionPolicy()

	r, err := bandmath.BandRange(ctx, params.Svcs.Backend, img, policy)
	if err != nil {
		return nil, err
	}

	result := normaliseResponse{Range: r}

	if req.Save {
		normalised, err := bandmath.Normalise(ctx, params.Svcs.Backend, img, policy)
		if err != nil {
			return nil, err
		}

		result.OutputDir = path.Join("normalised", id)
		if err := raster.SaveImage(params.Svcs.FS, params.Svcs.Config.ExportBucket, result.OutputDir, normalised, normalisedValueScale); err != nil {
			return nil, err
		}
	}

	return result, nil
}
