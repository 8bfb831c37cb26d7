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
	"net/http"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/viz"
)

const presetIdentifier = "preset"

type chartAxes struct {
	HAxis  viz.AxisTitle `json:"hAxis"`
	VAxis  viz.AxisTitle `json:"vAxis"`
	VAxis2 viz.AxisTitle `json:"vAxis2"`
}

func registerVizHandler(router *apiRouter.ApiObjectRouter) {
	const pathPrefix = "viz"

	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix), "GET", vizList)
	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix+"-axes"), "GET", vizAxesGet)
	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix, presetIdentifier), "GET", vizGet)
}

func vizList(params handlers.ApiHandlerParams) (interface{}, error) {
	return viz.PresetNames(), nil
}

func vizGet(params handlers.ApiHandlerParams) (interface{}, error) {
	p, err := viz.Preset(params.PathParams[presetIdentifier])
	if err != nil {
		return nil, errorwithstatus.MakeStatusError(http.StatusNotFound, err)
	}
	return p, nil
}

func vizAxesGet(params handlers.ApiHandlerParams) (interface{}, error) {
	return chartAxes{HAxis: viz.HAxis, VAxis: viz.VAxis, VAxis2: viz.VAxis2}, nil
}
