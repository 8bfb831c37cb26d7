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

// Wavelength tables and band naming for the sensors we work with. Positional
// band references are only ever handed out through functions here that check
// bounds, never as bare integers scattered around the code.
package spectral

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Sensor string

const (
	PACE     Sensor = "pace"
	EMIT     Sensor = "emit"
	Hyperion Sensor = "hyperion"
)

var AllSensors = []Sensor{PACE, EMIT, Hyperion}

// EMIT bands 128-143 and 188-213 (1-based) sit in water absorption windows and
// contain no usable data. These are the 0-based inclusive ranges we keep.
var emitGoodBandRanges = [][2]int{{0, 126}, {143, 186}, {213, 284}}

// Wavelengths - returns the full table for a sensor
func Wavelengths(sensor Sensor) ([]float64, error) {
	switch sensor {
	case PACE:
		return PACEWavelengths, nil
	case EMIT:
		return EMITWavelengths, nil
	case Hyperion:
		return HyperionWavelengths, nil
	}
	return nil, fmt.Errorf("unknown sensor: %v", sensor)
}

// Lookup - finds a sensor from a user supplied string
func Lookup(name string) (Sensor, error) {
	want := Sensor(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range AllSensors {
		if s == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sensor: %v", name)
}

// BandCount - number of bands in the full product for the sensor
func BandCount(sensor Sensor) int {
	wl, err := Wavelengths(sensor)
	if err != nil {
		return 0
	}
	return len(wl)
}

// BandName - name of the band at 0-based index idx, as it appears in the
// product: PACE b1..b122, EMIT reflectance_0..reflectance_284, Hyperion B001..
func BandName(sensor Sensor, idx int) (string, error) {
	count := BandCount(sensor)
	if count == 0 {
		return "", fmt.Errorf("unknown sensor: %v", sensor)
	}
	if idx < 0 || idx >= count {
		return "", fmt.Errorf("band index %v out of range for %v (%v bands)", idx, sensor, count)
	}

	switch sensor {
	case PACE:
		return "b" + strconv.Itoa(idx+1), nil
	case EMIT:
		return "reflectance_" + strconv.Itoa(idx), nil
	}
	return fmt.Sprintf("B%03d", idx+1), nil
}

// BandNames - all band names for a sensor, in product order
func BandNames(sensor Sensor) []string {
	count := BandCount(sensor)
	result := make([]string, 0, count)
	for c := 0; c < count; c++ {
		name, _ := BandName(sensor, c)
		result = append(result, name)
	}
	return result
}

// BandIndex - reverse of BandName
func BandIndex(sensor Sensor, name string) (int, error) {
	var numStr string
	offset := 0

	switch sensor {
	case PACE:
		numStr = strings.TrimPrefix(name, "b")
		offset = 1
	case EMIT:
		numStr = strings.TrimPrefix(name, "reflectance_")
	case Hyperion:
		numStr = strings.TrimPrefix(name, "B")
		offset = 1
	default:
		return -1, fmt.Errorf("unknown sensor: %v", sensor)
	}

	if numStr == name {
		return -1, fmt.Errorf("%v is not a %v band name", name, sensor)
	}

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return -1, fmt.Errorf("%v is not a %v band name", name, sensor)
	}

	idx := num - offset
	if idx < 0 || idx >= BandCount(sensor) {
		return -1, fmt.Errorf("band %v out of range for %v", name, sensor)
	}
	return idx, nil
}

// EMITGoodBandIndices - the 243 EMIT band indices (0-based) that carry data
func EMITGoodBandIndices() []int {
	result := []int{}
	for _, r := range emitGoodBandRanges {
		for c := r[0]; c <= r[1]; c++ {
			result = append(result, c)
		}
	}
	return result
}

// EMITGoodBandRanges - same as EMITGoodBandIndices but as inclusive [start, end] ranges,
// which is how the catalog selects them
func EMITGoodBandRanges() [][2]int {
	result := make([][2]int, len(emitGoodBandRanges))
	copy(result, emitGoodBandRanges)
	return result
}

// EMITGoodWavelengths - wavelengths of the bands returned by EMITGoodBandIndices
func EMITGoodWavelengths() []float64 {
	idxs := EMITGoodBandIndices()
	result := make([]float64, 0, len(idxs))
	for _, idx := range idxs {
		result = append(result, EMITWavelengths[idx])
	}
	return result
}

// NearestBand - index of the band whose centre is closest to nm. Ties go to
// the lower index. Linear scan because Hyperion isn't sorted.
func NearestBand(sensor Sensor, nm float64) (int, error) {
	wl, err := Wavelengths(sensor)
	if err != nil {
		return -1, err
	}

	best := -1
	bestDist := math.Inf(1)
	for c, w := range wl {
		if d := math.Abs(w - nm); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, nil
}
