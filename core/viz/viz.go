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

// Display presets for false colour composites and the axis titles used when
// charting spectra and index time series.
package viz

import (
	"fmt"
	"sort"
)

type VisParams struct {
	Bands []string  `json:"bands"`
	Min   []float64 `json:"min"`
	Max   []float64 `json:"max"`
}

// Mimic the Landsat 5-4-3 combination: forest dark green, grassland
// pink/purple and water dark blue. The *Unscaled variants are for 0..1
// reflectance, the others for reflectance x 10000.
var (
	Viz1         = VisParams{Bands: []string{"b120", "b111", "b60"}, Min: []float64{2700, 2500, 450}, Max: []float64{3800, 3700, 1250}}
	Viz1Unscaled = VisParams{Bands: []string{"b120", "b111", "b60"}, Min: []float64{0.27, 0.25, 0.045}, Max: []float64{0.38, 0.37, 0.125}}
	Viz2         = VisParams{Bands: []string{"b120", "b111", "b60"}, Min: []float64{-1100, -1350, -700}, Max: []float64{3800, 5100, 2050}}
	Viz3         = VisParams{Bands: []string{"b120", "b111", "b60"}, Min: []float64{-730, -834, -684}, Max: []float64{4050, 5376, 2140}}
	Viz3Unscaled = VisParams{Bands: []string{"b120", "b111", "b60"}, Min: []float64{-0.0730, -0.0834, -0.0684}, Max: []float64{0.4050, 0.5376, 0.2140}}

	Viz1EMIT  = VisParams{Bands: []string{"reflectance_164", "reflectance_65", "reflectance_37"}, Min: []float64{-730, -834, -684}, Max: []float64{4050, 5376, 2140}}
	Viz1bEMIT = VisParams{Bands: []string{"reflectance_164", "reflectance_65", "reflectance_37"}, Min: []float64{-0.0730, -0.0834, -0.0684}, Max: []float64{0.4050, 0.5376, 0.2140}}
)

var presets = map[string]VisParams{
	"viz1":       Viz1,
	"viz1_":      Viz1Unscaled,
	"viz2":       Viz2,
	"viz3":       Viz3,
	"viz3_":      Viz3Unscaled,
	"viz1_emit":  Viz1EMIT,
	"viz1b_emit": Viz1bEMIT,
}

func Preset(name string) (VisParams, error) {
	p, ok := presets[name]
	if !ok {
		return VisParams{}, fmt.Errorf("unknown visualisation preset: %v", name)
	}
	return p, nil
}

func PresetNames() []string {
	result := make([]string, 0, len(presets))
	for name := range presets {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

type AxisTitle struct {
	Title string `json:"title"`
}

// Chart axis titles
var (
	HAxis  = AxisTitle{Title: "Wavelength (nm)"}
	VAxis  = AxisTitle{Title: "Reflectance x 10,000"}
	VAxis2 = AxisTitle{Title: "VI x 10,000"}
)
