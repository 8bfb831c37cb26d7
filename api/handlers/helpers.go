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

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/pixlise/hyperspectral/api/services"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/reduce"
)

const HostParamName = "hostname"

// Helper functions for the above handlers
func makePathParams(svcs *services.APIServices, r *http.Request) map[string]string {
	// Get path params
	pathParams := mux.Vars(r)
	if pathParams == nil {
		pathParams = map[string]string{}
	}

	queries := r.URL.Query()
	for q, v := range queries {
		if _, isPathParam := pathParams[q]; !isPathParam && len(v) > 0 {
			pathParams[q] = v[0] // we ignore subsequent ones
		}
	}

	// Set the host name in case anything needs it
	if svcs.Config.EnvironmentName == "local" {
		pathParams[HostParamName] = "http://" + r.Host
	} else {
		pathParams[HostParamName] = "https://" + r.Host
	}

	return pathParams
}

// StatusForError - the HTTP status to reply with for err
func StatusForError(err error) int {
	var se errorwithstatus.Error
	if errors.As(err, &se) {
		return se.Status()
	}
	if errors.Is(err, reduce.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, reduce.ErrResourceExceeded) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func logHandlerErrors(err error, log logger.ILogger, w http.ResponseWriter, r *http.Request) {
	status := StatusForError(err)
	log.Errorf("Request: %v (%v), Result: status=%v, error=%v", r.URL, r.Method, status, err)

	if status == http.StatusInternalServerError {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		}
	}

	http.Error(w, fmt.Sprintf("%v", err), status)
}
