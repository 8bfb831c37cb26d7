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

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/api/services"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Getting component versions

type ComponentVersion struct {
	Component string `json:"component"`
	Version   string `json:"version"`
}

type ComponentVersionsGetResponse struct {
	Components []ComponentVersion `json:"components"`
}

func getAPIVersion() string {
	ver := services.ApiVersion
	if len(services.ApiVersion) <= 0 {
		ver = "(Local build)"
	}

	if len(services.GitHash) > 0 {
		hashEnd := 8
		if len(services.GitHash) < 8 {
			hashEnd = len(services.GitHash)
		}
		ver += "-" + services.GitHash[0:hashEnd]
	}

	return ver
}

func registerVersionHandler(router *apiRouter.ApiObjectRouter) {
	// User goes to root of API, returns HTML
	router.AddGenericHandler("/", "GET", rootRequest)

	// User requesting version as JSON
	router.AddJSONHandler("/version", "GET", componentVersionsGet)
}

func componentVersionsGet(params handlers.ApiHandlerParams) (interface{}, error) {
	result := ComponentVersionsGetResponse{
		Components: []ComponentVersion{
			{Component: "API", Version: getAPIVersion()},
		},
	}

	// Only there when running against a real DB
	if params.Svcs.MongoDB != nil {
		result.Components = append(result.Components, ComponentVersion{Component: "DB", Version: params.Svcs.MongoDB.Name()})
	}

	return result, nil
}

func rootRequest(params handlers.ApiHandlerGenericParams) error {
	params.Writer.Header().Add("Content-Type", "text/html")

	var start string = `<!DOCTYPE html>
<html lang="en"><head></head>
<body style="font-family: Arial, Helvetica, sans-serif">
<center>`
	var mid = fmt.Sprintf("<h1>Hyperspectral API</h1><p>Version %s</p><p>Git Commit: %s", getAPIVersion(), services.GitHash)
	var end string = `</p>
</center>
</body>`

	_, err := params.Writer.Write([]byte(start + mid + end))
	return err
}

