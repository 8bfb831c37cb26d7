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

package bandmath

import "github.com/pixlise/hyperspectral/core/raster"

// ReflectanceScale - reflectance is stored as int16 x 10000
const ReflectanceScale = 10000

// Rescale - scaled integer reflectance back to 0..1 reflectance
func Rescale(img *raster.Image) *raster.Image {
	return img.Map(func(b int, v float64) float64 { return v / ReflectanceScale }).CopyTimeStart(img)
}

// ScaleToInt16 - 0..1 reflectance to integer reflectance x 10000,
// truncated towards zero and clamped to the int16 range
func ScaleToInt16(img *raster.Image) *raster.Image {
	return img.MultiplyScalar(ReflectanceScale).TruncateInt16().CopyTimeStart(img)
}
