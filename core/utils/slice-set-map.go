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

package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func ItemInSlice[T comparable](a T, list []T) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// GetSortedMapKeys - keys of the map in ascending order, so output built from maps is stable
func GetSortedMapKeys[K constraints.Ordered, V any](theMap map[K]V) []K {
	result := make([]K, 0, len(theMap))

	for key := range theMap {
		result = append(result, key)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MakeRange - [start, start+1, ... end] inclusive
func MakeRange[T constraints.Integer](start, end T) []T {
	if end < start {
		return []T{}
	}
	result := make([]T, 0, int(end-start)+1)
	for v := start; v <= end; v++ {
		result = append(result, v)
	}
	return result
}
