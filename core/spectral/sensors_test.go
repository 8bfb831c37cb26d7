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

package spectral

import (
	"fmt"
	"testing"
)

func Example_tableSizes() {
	fmt.Println(len(PACEWavelengths), len(PACEVNIRWavelengths), len(MODISEquivalentWavelengths), len(MODISWavelengths))
	fmt.Println(len(EMITWavelengths), len(EMITGoodWavelengths()), len(EMITGoodBandIndices()))
	fmt.Println(len(HyperionWavelengths))
	fmt.Println(PACEVNIRWavelengths[116], PACEWavelengths[117])

	// Output:
	// 122 117 6 6
	// 285 243 243
	// 198
	// 895 1038
}

func Example_bandName() {
	fmt.Println(BandName(PACE, 110))
	fmt.Println(BandName(PACE, 0))
	fmt.Println(BandName(EMIT, 164))
	fmt.Println(BandName(Hyperion, 7))
	fmt.Println(BandName(PACE, 122))
	fmt.Println(BandName(EMIT, -1))
	fmt.Println(BandName("landsat", 1))

	// Output:
	// b111 <nil>
	// b1 <nil>
	// reflectance_164 <nil>
	// B008 <nil>
	//  band index 122 out of range for pace (122 bands)
	//  band index -1 out of range for emit (285 bands)
	//  unknown sensor: landsat
}

func Example_bandIndex() {
	fmt.Println(BandIndex(PACE, "b60"))
	fmt.Println(BandIndex(EMIT, "reflectance_37"))
	fmt.Println(BandIndex(Hyperion, "B224"))
	fmt.Println(BandIndex(PACE, "b123"))
	fmt.Println(BandIndex(PACE, "reflectance_3"))

	// Output:
	// 59 <nil>
	// 37 <nil>
	// -1 band B224 out of range for hyperion
	// -1 band b123 out of range for pace
	// -1 reflectance_3 is not a pace band name
}

func Example_nearestBand() {
	fmt.Println(NearestBand(PACE, 860))
	fmt.Println(NearestBand(PACE, 2200))
	fmt.Println(NearestBand(EMIT, 381))
	fmt.Println(NearestBand(Hyperion, 915))

	// Output:
	// 109 <nil>
	// 121 <nil>
	// 0 <nil>
	// 48 <nil>
}

func Example_lookup() {
	fmt.Println(Lookup(" EMIT"))
	fmt.Println(Lookup("aviris"))

	// Output:
	// emit <nil>
	//  unknown sensor: aviris
}

func TestEMITGoodBandsSkipWaterAbsorption(t *testing.T) {
	idxs := EMITGoodBandIndices()
	for _, idx := range idxs {
		if (idx >= 127 && idx <= 142) || (idx >= 187 && idx <= 212) {
			t.Errorf("band %v should have been excluded", idx)
		}
	}

	wl := EMITGoodWavelengths()
	if wl[126] != 1320.0685 || wl[127] != 1446.7404 {
		t.Errorf("unexpected wavelengths either side of first gap: %v, %v", wl[126], wl[127])
	}
	if wl[170] != 1766.7084 || wl[171] != 1967.2518 {
		t.Errorf("unexpected wavelengths either side of second gap: %v, %v", wl[170], wl[171])
	}
}

func TestBandNamesRoundTrip(t *testing.T) {
	for _, sensor := range AllSensors {
		for c, name := range BandNames(sensor) {
			idx, err := BandIndex(sensor, name)
			if err != nil || idx != c {
				t.Fatalf("%v band %v: got %v, %v", sensor, name, idx, err)
			}
		}
	}
}
