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
	"encoding/json"
	"io"
	"path"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/export"
	"github.com/pixlise/hyperspectral/core/pca"
	"github.com/pixlise/hyperspectral/core/raster"
)

type pcaRequest struct {
	// Where the statistics are computed, the whole scene if not set
	Region *raster.Rect `json:"region,omitempty"`
	Prefix string       `json:"prefix,omitempty"`
	// Write the components to the export bucket
	Save bool `json:"save,omitempty"`
}

type pcaResponse struct {
	Report    pca.VarianceReport `json:"report"`
	Bands     []string           `json:"bands"`
	OutputDir string             `json:"outputDir,omitempty"`
}

func registerPCAHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath("scenes", sceneIdentifier)+"/pca", "POST", pcaPost)
}

// readBody - unmarshals the request body into req, leaving it as is if the body is empty or nil
func readBody(r io.Reader, req interface{}) error {
	if r == nil {
		return nil
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return errorwithstatus.MakeBadRequestError(err)
	}
	if len(body) <= 0 {
		return nil
	}
	if err := json.Unmarshal(body, req); err != nil {
		return errorwithstatus.MakeBadRequestError(err)
	}
	return nil
}

func pcaOutputDir(sceneID string, prefix string) string {
	return path.Join("pca", sceneID, prefix)
}

func pcaPost(params handlers.ApiHandlerParams) (interface{}, error) {
	var req pcaRequest
	if err := readBody(params.Request.Body, &req); err != nil {
		return nil, err
	}

	ctx := params.Request.Context()
	id := params.PathParams[sceneIdentifier]

	_, img, err := loadSceneImage(ctx, params.Svcs, id)
	if err != nil {
		return nil, err
	}

	opts := pca.Options{
		Prefix: req.Prefix,
		Policy: params.Svcs.Config.ReductionPolicy(),
		Log:    params.Svcs.Log,
	}

	components, report, err := pca.ComputePCA(ctx, params.Svcs.Backend, img, req.Region, opts)
	if err != nil {
		return nil, err
	}

	result := pcaResponse{Report: report, Bands: components.Bands}

	if req.Save {
		prefix := req.Prefix
		if len(prefix) <= 0 {
			prefix = pca.DefaultPrefix
		}

		result.OutputDir = pcaOutputDir(id, prefix)
		if err := raster.SaveImage(params.Svcs.FS, params.Svcs.Config.ExportBucket, result.OutputDir, components, export.ComponentValueScale); err != nil {
			return nil, err
		}
		params.Svcs.Log.Infof("Saved PCA of %v to %v", id, result.OutputDir)
	}

	return result, nil
}
