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
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/export"
	"github.com/pixlise/hyperspectral/core/pca"
	"github.com/pixlise/hyperspectral/core/raster"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Exporting PCA results of a scene as a zip the client can save

type exportFilesParams struct {
	FileName string       `json:"fileName"`
	FileIDs  []string     `json:"fileIds"`
	Region   *raster.Rect `json:"region,omitempty"`
	Prefix   string       `json:"prefix,omitempty"`
	// Pixel for the spectral profile files
	ProfileX int `json:"profileX"`
	ProfileY int `json:"profileY"`
}

func registerExportHandler(router *apiRouter.ApiObjectRouter) {
	router.AddGenericHandler(handlers.MakeEndpointPath("scenes", sceneIdentifier)+"/export", "POST", exportFilesPost)
}

func exportFilesPost(params handlers.ApiHandlerGenericParams) error {
	var req exportFilesParams
	if err := readBody(params.Request.Body, &req); err != nil {
		return err
	}

	if len(req.FileIDs) <= 0 {
		return errorwithstatus.MakeBadRequestError(fmt.Errorf("No File IDs specified, nothing to export"))
	}

	if !strings.HasSuffix(req.FileName, ".zip") {
		return errorwithstatus.MakeBadRequestError(fmt.Errorf("File name must end in .zip"))
	}

	ctx := params.Request.Context()
	id := params.PathParams[sceneIdentifier]

	scene, img, err := loadSceneImage(ctx, params.Svcs, id)
	if err != nil {
		return err
	}

	opts := pca.Options{
		Prefix: req.Prefix,
		Policy: params.Svcs.Config.ReductionPolicy(),
		Log:    params.Svcs.Log,
	}

	components, report, err := pca.ComputePCA(ctx, params.Svcs.Backend, img, req.Region, opts)
	if err != nil {
		return err
	}

	in := export.Inputs{
		Report:     report,
		Components: components,
		Source:     img,
		Sensor:     scene.Sensor,
		ProfileX:   req.ProfileX,
		ProfileY:   req.ProfileY,
	}

	// File name must end in .zip, but we don't want this in all our exports!
	filePrefix := strings.TrimSuffix(req.FileName, ".zip")

	zipData, err := params.Svcs.Exporter.MakeExportFilesZip(filePrefix, in, req.FileIDs)
	if err != nil {
		return errorwithstatus.MakeStatusError(http.StatusNotFound, err)
	}

	// We write our responses as octet streams, and include the file name...
	params.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", req.FileName))
	params.Writer.Header().Set("Content-Type", "application/octet-stream")
	params.Writer.Header().Set("Cache-Control", "no-store")
	params.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

	params.Writer.Header().Set("Content-Length", fmt.Sprintf("%v", len(zipData)))

	if _, err := io.Copy(params.Writer, bytes.NewReader(zipData)); err != nil {
		params.Svcs.Log.Errorf("Failed to write zip contents of %v to response: %v", req.FileName, err)
	}

	return nil
}
