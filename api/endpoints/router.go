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
	"github.com/gorilla/mux"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/api/services"
)

func MakeRouter(svcs services.APIServices) apiRouter.ApiObjectRouter {
	router := mux.NewRouter()

	apiRouter := apiRouter.NewAPIRouter(&svcs, router)

	registerVersionHandler(&apiRouter)
	registerSensorHandler(&apiRouter)
	registerVizHandler(&apiRouter)
	registerSceneHandler(&apiRouter)
	registerPCAHandler(&apiRouter)
	registerNormaliseHandler(&apiRouter)
	registerIndexHandler(&apiRouter)
	registerEMITHandler(&apiRouter)
	registerExportHandler(&apiRouter)

	return apiRouter
}
