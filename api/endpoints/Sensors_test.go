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
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func Example_sensorsGet() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	req, _ := http.NewRequest("GET", "/sensors", nil)
	resp := executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)
	fmt.Println(resp.Body.String())

	req, _ = http.NewRequest("GET", "/sensors/PACE/nearest?nm=652.4", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)
	fmt.Println(resp.Body.String())

	req, _ = http.NewRequest("GET", "/sensors/pace/nearest?nm=red", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Printf("%v %v", resp.Code, resp.Body.String())

	req, _ = http.NewRequest("GET", "/sensors/modis/wavelengths", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Printf("%v %v", resp.Code, resp.Body.String())

	// Output:
	// 200
	// [
	//     {
	//         "name": "pace",
	//         "bandCount": 122
	//     },
	//     {
	//         "name": "emit",
	//         "bandCount": 285
	//     },
	//     {
	//         "name": "hyperion",
	//         "bandCount": 198
	//     }
	// ]
	//
	// 200
	// {
	//     "sensor": "pace",
	//     "index": 59,
	//     "band": "b60",
	//     "wavelength": 652
	// }
	//
	// 400 nm must be a wavelength in nanometres: strconv.ParseFloat: parsing "red": invalid syntax
	// 404 unknown sensor: modis
}

func Test_sensorWavelengths(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	for sensor, count := range map[string]int{"pace": 122, "emit": 285, "hyperion": 198} {
		req, _ := http.NewRequest("GET", "/sensors/"+sensor+"/wavelengths", nil)
		resp := executeRequest(req, apiRouter.Router)
		if resp.Code != http.StatusOK {
			t.Fatalf("%v: status %v", sensor, resp.Code)
		}

		var body sensorWavelengths
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}

		if len(body.Bands) != count || len(body.Wavelengths) != count {
			t.Errorf("%v: got %v bands, %v wavelengths", sensor, len(body.Bands), len(body.Wavelengths))
		}
		for c, w := range body.Wavelengths {
			if w <= 0 {
				t.Errorf("%v: bad wavelength %v at %v", sensor, w, c)
				break
			}
		}
	}
}

func Example_vizGet() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	req, _ := http.NewRequest("GET", "/viz", nil)
	resp := executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)
	var names []string
	fmt.Println(json.Unmarshal(resp.Body.Bytes(), &names), names)

	req, _ = http.NewRequest("GET", "/viz/viz1_emit", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)
	var p struct {
		Bands []string
		Min   []float64
		Max   []float64
	}
	fmt.Println(json.Unmarshal(resp.Body.Bytes(), &p), p.Bands, p.Min, p.Max)

	req, _ = http.NewRequest("GET", "/viz-axes", nil)
	resp = executeRequest(req, apiRouter.Router)
	printJSONField(resp, "vAxis2")

	req, _ = http.NewRequest("GET", "/viz/viz9", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Printf("%v %v", resp.Code, resp.Body.String())

	// Output:
	// 200
	// <nil> [viz1 viz1_ viz1_emit viz1b_emit viz2 viz3 viz3_]
	// 200
	// <nil> [reflectance_164 reflectance_65 reflectance_37] [-730 -834 -684] [4050 5376 2140]
	// vAxis2: map[title:VI x 10,000]
	// 404 unknown visualisation preset: viz9
}
