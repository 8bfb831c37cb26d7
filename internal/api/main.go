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

package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/pixlise/hyperspectral/api/config"
	"github.com/pixlise/hyperspectral/api/endpoints"
	"github.com/pixlise/hyperspectral/api/services"
	"github.com/pixlise/hyperspectral/core/memoisation"
	"github.com/pixlise/hyperspectral/core/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// This is for prometheus
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(":2112", nil)
	}()

	cfg := loadConfig()
	svcs := services.InitAPIServices(cfg, nil)

	// Clear out memoised reductions nobody has read in a while
	go memoisation.RunGarbageCollector(context.Background(), cfg.MemoisationGCIntervalSec, cfg.MemoisationMaxAgeSec, svcs.MongoDB, svcs.TimeStamper, svcs.Log)

	////////////////////////////////////////////////////
	// Set up HTTP server

	router := endpoints.MakeRouter(svcs)

	printRoutes(router.GetRoutes())

	logware := endpoints.LoggerMiddleware{
		APIServices: &svcs,
	}

	promware := endpoints.PrometheusMiddleware

	router.Router.Use(logware.Middleware, promware)

	// Now also log this to the world...
	svcs.Log.Infof("API version \"%v\" started on %v...", services.ApiVersion, cfg.ListenAddress)

	log.Fatal(
		http.ListenAndServe(cfg.ListenAddress,
			handlers.CORS(
				handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
				handlers.AllowedMethods([]string{"GET", "POST", "HEAD", "OPTIONS"}),
				handlers.AllowedOrigins([]string{"*"}))(router.Router)))
}

func loadConfig() config.APIConfig {
	cfg, err := config.Init()
	if err != nil {
		log.Fatalf("Something went wrong with API config. Error: %v\n", err)
	}

	// Show the config
	cfgJSON, err := json.MarshalIndent(cfg, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		log.Fatalf("Error trying to display config\n")
	}

	log.Println(string(cfgJSON))
	return cfg
}
