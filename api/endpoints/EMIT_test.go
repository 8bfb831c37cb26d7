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
)

func Example_emitReflectanceGet() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	for _, q := range []string{
		"x=0&y=0&w=2&h=1&date=2023-08-01",
		"x=0&y=0&w=2&h=1&date=2023-08-01&full=true",
		"x=0&y=0&w=2&h=1&from=2023-08-01&to=2023-08-03",
		"x=0&y=0&w=2&h=1&from=2023-08-01&to=2023-08-03&full=true&save=true",
		"x=0&y=0&w=2&h=1&date=2023-09-01",
		"x=0&y=0&w=2&h=1",
		"date=2023-08-01",
	} {
		req, _ := http.NewRequest("GET", "/emit/reflectance?"+q, nil)
		resp := executeRequest(req, apiRouter.Router)
		if resp.Code != http.StatusOK {
			fmt.Printf("%v %v", resp.Code, resp.Body.String())
			continue
		}

		var result compositeResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("%+v\n", result)
	}

	exists, err := svcs.FS.ObjectExists(ExportBucketForUnitTest, "emit/0_0_2_1/2023-08-01_2023-08-03/manifest.json")
	fmt.Println(exists, err)

	// Output:
	// {Bands:243 Width:3 Height:1 ValidPixels:3 TimeStartUnixSec:1690848000 OutputDir:}
	// {Bands:285 Width:3 Height:1 ValidPixels:3 TimeStartUnixSec:0 OutputDir:}
	// {Bands:243 Width:2 Height:1 ValidPixels:2 TimeStartUnixSec:0 OutputDir:}
	// {Bands:285 Width:2 Height:1 ValidPixels:2 TimeStartUnixSec:0 OutputDir:emit/0_0_2_1/2023-08-01_2023-08-03}
	// 400 collection is empty: invalid input
	// 400 either date or from and to are required
	// 400 x, y, w, h are required
	// true <nil>
}

func Example_emitTimeSeriesGet() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	req, _ := http.NewRequest("GET", "/emit/timeseries?band=reflectance_1&x=1&y=0", nil)
	resp := executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)

	var points []timeSeriesPoint
	fmt.Println(json.Unmarshal(resp.Body.Bytes(), &points))
	for _, p := range points {
		fmt.Printf("%v %v %v\n", p.SceneID, p.TimeStartUnixSec, p.Value)
	}

	req, _ = http.NewRequest("GET", "/emit/timeseries?band=reflectance_1&x=2&y=0", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code, resp.Body.String())

	req, _ = http.NewRequest("GET", "/emit/timeseries?band=b60&x=2&y=0", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Printf("%v %v", resp.Code, resp.Body.String())

	req, _ = http.NewRequest("GET", "/emit/timeseries?band=reflectance_1&x=2", nil)
	resp = executeRequest(req, apiRouter.Router)
	fmt.Printf("%v %v", resp.Code, resp.Body.String())

	// Output:
	// 200
	// <nil>
	// e1 1690855200 0
	// e2 1690858800 11250
	// e3 1690938000 20000
	// 200 [
	//     {
	//         "sceneId": "e2",
	//         "timeStartUnixSec": 1690858800,
	//         "value": 10000
	//     }
	// ]
	//
	// 400 b60 is not a emit band name
	// 400 y must be an integer
}
