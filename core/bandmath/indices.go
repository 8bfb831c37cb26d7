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

import (
	"fmt"
	"sort"

	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pkg/errors"
)

// Indices are stored as integers x 10000
const IndexScale = 10000

// Formulas and band choices from Huemmrich (2024), PACE terrestrial
// applications, using PACE OCI surface reflectance band names b1..b122

type IndexFunc func(img *raster.Image) (*raster.Image, error)

type Index struct {
	Name        string
	Description string
	Compute     IndexFunc
}

// normalisedDifference - (a-b)/(a+b) x 10000 of 2 named bands
func normalisedDifference(img *raster.Image, a, b string, name string) (*raster.Image, error) {
	for _, band := range []string{a, b} {
		if img.BandIndex(band) < 0 {
			return nil, errors.Wrapf(reduce.ErrInvalidInput, "%v needs band %v", name, band)
		}
	}

	nd, err := img.NormalizedDifference(a, b)
	if err != nil {
		return nil, err
	}
	return finishIndex(nd, img, name)
}

// positionalExpression - evaluates fn with variables bound to bands by 0-based position
func positionalExpression(img *raster.Image, name string, vars map[string]int, fn func(v map[string]float64) float64) (*raster.Image, error) {
	bindings := map[string]string{}
	for v, idx := range vars {
		if idx < 0 || idx >= img.BandCount() {
			return nil, errors.Wrapf(reduce.ErrInvalidInput, "%v needs band index %v, image has %v bands", name, idx, img.BandCount())
		}
		bindings[v] = img.Bands[idx]
	}

	out, err := img.Expression(name, bindings, fn)
	if err != nil {
		return nil, err
	}
	return finishIndex(out, img, name)
}

func finishIndex(result *raster.Image, src *raster.Image, name string) (*raster.Image, error) {
	scaled, err := result.MultiplyScalar(IndexScale).Rename(name)
	if err != nil {
		return nil, err
	}
	return scaled.CopyTimeStart(src), nil
}

// NDVI - Normalized Difference Vegetation Index
func NDVI(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b111", "b60", "NDVI")
}

// EVI - Enhanced Vegetation Index
func EVI(img *raster.Image) (*raster.Image, error) {
	return positionalExpression(img, "EVI", map[string]int{"BLUE": 26, "RED": 59, "NIR": 110}, func(v map[string]float64) float64 {
		return 2.5 * ((v["NIR"] - v["RED"]) / (v["NIR"] + 6*v["RED"] - 7.5*v["BLUE"] + 1))
	})
}

// NBR - Normalized Burn Ratio
func NBR(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b111", "b121", "NBR")
}

// NDWI - Normalized Difference Water Index, water content and foliage water stress
func NDWI(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b111", "b119", "NDWI")
}

// NDII - Normalized Difference Infrared Index
func NDII(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b111", "b120", "NDII")
}

// NDSI - Normalized Difference Snow Index
func NDSI(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b43", "b120", "NDSI")
}

// PRI - Photochemical Reflectance Index, xanthophyll cycle shifts
func PRI(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b38", "b46", "PRI")
}

// CCI - Chlorophyll Carotenoid Index
func CCI(img *raster.Image) (*raster.Image, error) {
	return normalisedDifference(img, "b38", "b60", "CCI")
}

// CIRE - Chlorophyll Index Red Edge, canopy chlorophyll
func CIRE(img *raster.Image) (*raster.Image, error) {
	return positionalExpression(img, "CIRE", map[string]int{"P705": 75, "P800": 97}, func(v map[string]float64) float64 {
		return v["P800"]/v["P705"] - 1
	})
}

// CAR - Carotenoid Content Index
func CAR(img *raster.Image) (*raster.Image, error) {
	return positionalExpression(img, "CAR", map[string]int{"P495": 30, "P705": 75, "P800": 97}, func(v map[string]float64) float64 {
		return v["P800"] * (1/v["P495"] - 1/v["P705"])
	})
}

// MARI - Modified Anthocyanin Reflectance Index
func MARI(img *raster.Image) (*raster.Image, error) {
	return positionalExpression(img, "mARI", map[string]int{"P550": 41, "P705": 75, "P800": 97}, func(v map[string]float64) float64 {
		return v["P800"] * (1/v["P550"] - 1/v["P705"])
	})
}

// CarCireMari - CAR, CIRE and mARI stacked as 3 bands, for tracking
// carotenoids, chlorophyll and anthocyanins together over time
func CarCireMari(img *raster.Image) (*raster.Image, error) {
	parts := []*raster.Image{}
	for _, fn := range []IndexFunc{CAR, CIRE, MARI} {
		part, err := fn(img)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	result, err := raster.Cat(parts...)
	if err != nil {
		return nil, err
	}
	return result.CopyTimeStart(img), nil
}

var indices = map[string]Index{}

func register(name string, description string, fn IndexFunc) {
	indices[name] = Index{Name: name, Description: description, Compute: fn}
}

func init() {
	register("NDVI", "Normalized Difference Vegetation Index", NDVI)
	register("EVI", "Enhanced Vegetation Index", EVI)
	register("NBR", "Normalized Burn Ratio", NBR)
	register("NDWI", "Normalized Difference Water Index", NDWI)
	register("NDII", "Normalized Difference Infrared Index", NDII)
	register("NDSI", "Normalized Difference Snow Index", NDSI)
	register("PRI", "Photochemical Reflectance Index", PRI)
	register("CCI", "Chlorophyll Carotenoid Index", CCI)
	register("CIRE", "Chlorophyll Index Red Edge", CIRE)
	register("CAR", "Carotenoid Content Index", CAR)
	register("mARI", "Modified Anthocyanin Reflectance Index", MARI)
	register("CAR_CIRE_mARI", "CAR, CIRE and mARI as 3 bands", CarCireMari)
}

// Lookup - index by name, as listed by IndexNames
func Lookup(name string) (Index, error) {
	idx, ok := indices[name]
	if !ok {
		return Index{}, fmt.Errorf("unknown index: %v", name)
	}
	return idx, nil
}

func IndexNames() []string {
	result := make([]string, 0, len(indices))
	for name := range indices {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
