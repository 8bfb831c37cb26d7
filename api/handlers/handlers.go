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

// Defines handlers, kind of like base classes for endpoints
package handlers

import (
	"path"
	"strings"
)

// MakeEndpointPath - joins a prefix with mux path variables, so
// ("scenes", "id") gives "/scenes/{id}". Fixed segments after a variable are
// appended by the caller.
func MakeEndpointPath(pathPrefix string, pathParamNames ...string) string {
	vals := []string{"/" + pathPrefix}

	for _, param := range pathParamNames {
		vals = append(vals, "{"+strings.Trim(param, "/")+"}")
	}

	return path.Join(vals...)
}

