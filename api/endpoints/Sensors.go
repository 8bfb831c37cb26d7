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
	"strconv"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/spectral"
	"github.com/pkg/errors"
)

const sensorIdentifier = "sensor"

type sensorSummary struct {
	Name      spectral.Sensor `json:"name"`
	BandCount int             `json:"bandCount"`
}

type sensorWavelengths struct {
	Sensor      spectral.Sensor `json:"sensor"`
	Bands       []string        `json:"bands"`
	Wavelengths []float64       `json:"wavelengths"`
}

type nearestBand struct {
	Sensor     spectral.Sensor `json:"sensor"`
	Index      int             `json:"index"`
	Band       string          `json:"band"`
	Wavelength float64         `json:"wavelength"`
}

func registerSensorHandler(router *apiRouter.ApiObjectRouter) {
	const pathPrefix = "sensors"

	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix), "GET", sensorList)
	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix, sensorIdentifier)+"/wavelengths", "GET", sensorWavelengthsGet)
	router.AddJSONHandler(handlers.MakeEndpointPath(pathPrefix, sensorIdentifier)+"/nearest", "GET", sensorNearestBandGet)
}

func sensorFromParams(params handlers.ApiHandlerParams) (spectral.Sensor, error) {
	sensor, err := spectral.Lookup(params.PathParams[sensorIdentifier])
	if err != nil {
		return sensor, errorwithstatus.MakeStatusError(http.StatusNotFound, err)
	}
	return sensor, nil
}

func sensorList(params handlers.ApiHandlerParams) (interface{}, error) {
	result := []sensorSummary{}
	for _, s := range spectral.AllSensors {
		result = append(result, sensorSummary{Name: s, BandCount: spectral.BandCount(s)})
	}
	return result, nil
}

func sensorWavelengthsGet(params handlers.ApiHandlerParams) (interface{}, error) {
	sensor, err := sensorFromParams(params)
	if err != nil {
		return nil, err
	}

	wavelengths, err := spectral.Wavelengths(sensor)
	if err != nil {
		return nil, err
	}

	return sensorWavelengths{Sensor: sensor, Bands: spectral.BandNames(sensor), Wavelengths: wavelengths}, nil
}

// Band closest to ?nm=
func sensorNearestBandGet(params handlers.ApiHandlerParams) (interface{}, error) {
	sensor, err := sensorFromParams(params)
	if err != nil {
		return nil, err
	}

	nm, err := strconv.ParseFloat(params.PathParams["nm"], 64)
	if err != nil {
		return nil, errorwithstatus.MakeBadRequestError(errors.Wrap(err, "nm must be a wavelength in nanometres"))
	}

	idx, err := spectral.NearestBand(sensor, nm)
	if err != nil {
		return nil, err
	}

	name, err := spectral.BandName(sensor, idx)
	if err != nil {
		return nil, err
	}

	wavelengths, _ := spectral.Wavelengths(sensor)
	return nearestBand{Sensor: sensor, Index: idx, Band: name, Wavelength: wavelengths[idx]}, nil
}
