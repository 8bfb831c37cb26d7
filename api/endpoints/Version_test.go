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
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

func Example_version() {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)

	req, _ := http.NewRequest("GET", "/", nil)
	resp := executeRequest(req, apiRouter.Router)

	fmt.Println(resp.Code)
	fmt.Println(strings.HasPrefix(resp.Body.String(), "<!DOCTYPE html>"))

	versionPat := regexp.MustCompile(`<h1>Hyperspectral API</h1><p>Version .+</p>`)
	fmt.Println(versionPat.MatchString(resp.Body.String()))

	req, _ = http.NewRequest("GET", "/version", nil)
	resp = executeRequest(req, apiRouter.Router)

	fmt.Println(resp.Code)
	fmt.Println(strings.Join(strings.Fields(resp.Body.String()), ""))

	// Output:
	// 200
	// true
	// true
	// 200
	// {"components":[{"component":"API","version":"(Localbuild)"}]}
}
