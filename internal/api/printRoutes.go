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
	"fmt"
	"strings"
)

// printRoutes - routes come in as METHOD/path, sorted
func printRoutes(routes []string) {
	longestMethod := 0
	for _, route := range routes {
		method, _, _ := strings.Cut(route, "/")
		if len(method) > longestMethod {
			longestMethod = len(method)
		}
	}

	fmt.Println("Routes:")
	fmtString := fmt.Sprintf("%%-%vv /%%v\n", longestMethod)

	for _, route := range routes {
		// Make it more presentable
		method, path, _ := strings.Cut(route, "/")
		fmt.Printf(fmtString, method, path)
	}
}
