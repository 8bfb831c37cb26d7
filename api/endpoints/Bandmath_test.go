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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/pixlise/hyperspectral/core/raster"
)

func Example_normalisePost() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	req, _ := http.NewRequest("POST", "/scenes/s1/normalise", nil)
	resp := executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)
	fmt.Println(resp.Body.String())

	req, _ = http.NewRequest("POST", "/scenes/s1/normalise", bytes.NewReader([]byte(`{"save": true}`)))
	resp = executeRequest(req, apiRouter.Router)
	printJSONField(resp, "outputDir")

	img, err := raster.LoadImage(svcs.FS, ExportBucketForUnitTest, "normalised/s1")
	fmt.Println(err, img.Bands, img.Data[0], img.Data[1])

	// Output:
	// 200
	// {
	//     "range": {
	//         "bands": [
	//             "b60",
	//             "b111"
	//         ],
	//         "min": [
	//             1,
	//             2
	//         ],
	//         "max": [
	//             3,
	//             4
	//         ],
	//         "approximate": false
	//     }
	// }
	//
	// outputDir: normalised/s1
	// <nil> [b60 b111] [0 1 0 1] [0 0 1 1]
}

func Example_indexList() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	req, _ := http.NewRequest("GET", "/indices", nil)
	resp := executeRequest(req, apiRouter.Router)

	var list []indexInfo
	fmt.Println(resp.Code, json.Unmarshal(resp.Body.Bytes(), &list), len(list))
	fmt.Printf("%+v\n", list[0])

	// Output:
	// 200 <nil> 12
	// {Name:CAR Description:Carotenoid Content Index}
}

func Test_indexGet(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	near := func(a, b float64) bool {
		return math.Abs(a-b) < 1e-6
	}

	req, _ := http.NewRequest("GET", "/scenes/s1/index/NDVI", nil)
	resp := executeRequest(req, apiRouter.Router)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %v: %v", resp.Code, resp.Body.String())
	}

	var stats indexStats
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}

	// Pixels are (2-1)/3, (2-3)/5, (4-1)/5, (4-3)/7
	if stats.Index != "NDVI" || len(stats.Bands) != 1 || stats.Bands[0] != "NDVI" || stats.Scale != 10000 || stats.PixelCount != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	wantMean := (10000.0/3 - 2000 + 6000 + 10000.0/7) / 4
	if !near(stats.Min[0], -2000) || !near(stats.Max[0], 6000) || !near(stats.Mean[0], wantMean) {
		t.Errorf("unexpected values: %+v", stats)
	}

	// Top row only
	req, _ = http.NewRequest("GET", "/scenes/s1/index/NDVI?x=0&y=0&w=2&h=1", nil)
	resp = executeRequest(req, apiRouter.Router)
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.PixelCount != 2 || !near(stats.Max[0], 10000.0/3) || !near(stats.Mean[0], (10000.0/3-2000)/2) {
		t.Errorf("unexpected region values: %+v", stats)
	}

	for path, status := range map[string]int{
		// s1 only has 2 bands, EVI looks bands up by position
		"/scenes/s1/index/EVI":                  http.StatusBadRequest,
		"/scenes/s1/index/NOPE":                 http.StatusNotFound,
		"/scenes/s9/index/NDVI":                 http.StatusNotFound,
		"/scenes/s1/index/NDVI?x=5&y=5&w=1&h=1": http.StatusBadRequest,
	} {
		req, _ := http.NewRequest("GET", path, nil)
		resp := executeRequest(req, apiRouter.Router)
		if resp.Code != status {
			t.Errorf("%v: expected %v, got %v: %v", path, status, resp.Code, resp.Body.String())
		}
	}
}
