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

// Multi-band raster images. Every operation here returns a new Image and
// leaves its inputs untouched, so pixel buffers may be shared between images
// that were derived from one another. Nothing may write into Data or Valid
// of an Image it didn't just allocate.
package raster

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/slices"
)

// Property names we set on images
const (
	PropTimeStart = "system:time_start"
)

type Image struct {
	ID     string
	Bands  []string
	Width  int
	Height int

	// Data[band][y*Width+x]
	Data [][]float64
	// Valid[band][y*Width+x], false means no-data
	Valid [][]bool

	CRS string
	// Nominal pixel size in metres
	Scale float64

	Properties map[string]string
}

// NewImage - allocates an image with every pixel zero and valid
func NewImage(bands []string, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size: %vx%v", width, height)
	}
	if err := checkBandNames(bands); err != nil {
		return nil, err
	}

	img := &Image{
		Bands:      append([]string{}, bands...),
		Width:      width,
		Height:     height,
		Data:       make([][]float64, len(bands)),
		Valid:      make([][]bool, len(bands)),
		Scale:      1,
		Properties: map[string]string{},
	}

	for c := range bands {
		img.Data[c] = make([]float64, width*height)
		img.Valid[c] = makeMask(width*height, true)
	}
	return img, nil
}

// FromBandData - wraps existing per-band buffers (not copied) in an image, all pixels valid
func FromBandData(bands []string, width, height int, data [][]float64) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size: %vx%v", width, height)
	}
	if err := checkBandNames(bands); err != nil {
		return nil, err
	}
	if len(data) != len(bands) {
		return nil, fmt.Errorf("got %v band names but %v bands of data", len(bands), len(data))
	}

	img := &Image{
		Bands:      append([]string{}, bands...),
		Width:      width,
		Height:     height,
		Data:       data,
		Valid:      make([][]bool, len(bands)),
		Scale:      1,
		Properties: map[string]string{},
	}

	for c, d := range data {
		if len(d) != width*height {
			return nil, fmt.Errorf("band %v has %v values, expected %v", bands[c], len(d), width*height)
		}
		img.Valid[c] = makeMask(width*height, true)
	}
	return img, nil
}

func checkBandNames(bands []string) error {
	seen := map[string]bool{}
	for _, b := range bands {
		if len(b) <= 0 {
			return fmt.Errorf("empty band name")
		}
		if seen[b] {
			return fmt.Errorf("duplicate band name: %v", b)
		}
		seen[b] = true
	}
	return nil
}

func makeMask(n int, val bool) []bool {
	m := make([]bool, n)
	if val {
		for c := range m {
			m[c] = true
		}
	}
	return m
}

func (img *Image) BandCount() int {
	return len(img.Bands)
}

func (img *Image) PixelCount() int {
	return img.Width * img.Height
}

// Bounds - the image's own extent, the default region for reductions
func (img *Image) Bounds() Rect {
	return Rect{X: 0, Y: 0, Width: img.Width, Height: img.Height}
}

func (img *Image) BandIndex(name string) int {
	return slices.Index(img.Bands, name)
}

func (img *Image) At(band, x, y int) (float64, bool) {
	i := y*img.Width + x
	return img.Data[band][i], img.Valid[band][i]
}

// PixelValid - a pixel counts as valid only if every band has data there
func (img *Image) PixelValid(i int) bool {
	for b := range img.Valid {
		if !img.Valid[b][i] {
			return false
		}
	}
	return true
}

// Mask - per-pixel validity shared across all bands (AND of the band masks)
func (img *Image) Mask() []bool {
	result := make([]bool, img.PixelCount())
	for i := range result {
		result[i] = img.PixelValid(i)
	}
	return result
}

// ValidPixelCount - number of pixels in region valid in every band
func (img *Image) ValidPixelCount(region Rect) int {
	r := region.Intersect(img.Bounds())
	count := 0
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if img.PixelValid(y*img.Width + x) {
				count++
			}
		}
	}
	return count
}

// Pixel - the band values at x,y in band order
func (img *Image) Pixel(x, y int) []float64 {
	i := y*img.Width + x
	result := make([]float64, len(img.Bands))
	for b := range img.Bands {
		result[b] = img.Data[b][i]
	}
	return result
}

// TimeStart - unix milliseconds acquisition time, if known
func (img *Image) TimeStart() (int64, bool) {
	s, ok := img.Properties[PropTimeStart]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// withMeta - new image with our metadata and a fresh copy of properties,
// but no band data
func (img *Image) withMeta() *Image {
	props := make(map[string]string, len(img.Properties))
	for k, v := range img.Properties {
		props[k] = v
	}
	return &Image{
		ID:         img.ID,
		Width:      img.Width,
		Height:     img.Height,
		CRS:        img.CRS,
		Scale:      img.Scale,
		Properties: props,
	}
}

// WithProperties - copy of the image with extra properties set. Pixels are
// untouched so the ID is kept.
func (img *Image) WithProperties(props map[string]string) *Image {
	result := img.withMeta()
	result.Bands = img.Bands
	result.Data = img.Data
	result.Valid = img.Valid
	for k, v := range props {
		result.Properties[k] = v
	}
	return result
}

// WithTimeStart - copy of the image with the acquisition time property set
func (img *Image) WithTimeStart(unixMs int64) *Image {
	return img.WithProperties(map[string]string{PropTimeStart: strconv.FormatInt(unixMs, 10)})
}

// CopyTimeStart - takes the acquisition time of src, if it has one
func (img *Image) CopyTimeStart(src *Image) *Image {
	if t, ok := src.TimeStart(); ok {
		return img.WithTimeStart(t)
	}
	return img
}

// WithID - copy of the image under a new identity. Anything that changes
// pixels, validity or band names clears the ID, reductions are memoised on it.
func (img *Image) WithID(id string) *Image {
	result := img.WithProperties(nil)
	result.ID = id
	return result
}

// Select - new image containing the named bands in the order given
func (img *Image) Select(names ...string) (*Image, error) {
	idxs := make([]int, 0, len(names))
	for _, name := range names {
		idx := img.BandIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("band %v not found in image", name)
		}
		idxs = append(idxs, idx)
	}
	return img.SelectIndices(idxs...)
}

// SelectIndices - new image containing the bands at the given 0-based positions
func (img *Image) SelectIndices(idxs ...int) (*Image, error) {
	if len(idxs) <= 0 {
		return nil, fmt.Errorf("no bands selected")
	}

	result := img.withMeta()
	for _, idx := range idxs {
		if idx < 0 || idx >= len(img.Bands) {
			return nil, fmt.Errorf("band index %v out of range, image has %v bands", idx, len(img.Bands))
		}
		result.Bands = append(result.Bands, img.Bands[idx])
		result.Data = append(result.Data, img.Data[idx])
		result.Valid = append(result.Valid, img.Valid[idx])
	}

	if err := checkBandNames(result.Bands); err != nil {
		return nil, err
	}
	result.ID = ""
	return result, nil
}

// AddBands - new image with the bands of other appended after ours
func (img *Image) AddBands(other *Image) (*Image, error) {
	if other.Width != img.Width || other.Height != img.Height {
		return nil, fmt.Errorf("cannot add bands of %vx%v image to %vx%v image", other.Width, other.Height, img.Width, img.Height)
	}

	result := img.withMeta()
	result.Bands = append(append([]string{}, img.Bands...), other.Bands...)
	result.Data = append(append([][]float64{}, img.Data...), other.Data...)
	result.Valid = append(append([][]bool{}, img.Valid...), other.Valid...)

	if err := checkBandNames(result.Bands); err != nil {
		return nil, err
	}
	result.ID = ""
	return result, nil
}

// Cat - stacks the bands of several images into one
func Cat(imgs ...*Image) (*Image, error) {
	if len(imgs) <= 0 {
		return nil, fmt.Errorf("no images to concatenate")
	}
	result := imgs[0]
	for _, img := range imgs[1:] {
		var err error
		if result, err = result.AddBands(img); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Rename - same data, new band names
func (img *Image) Rename(names ...string) (*Image, error) {
	if len(names) != len(img.Bands) {
		return nil, fmt.Errorf("rename needs %v band names, got %v", len(img.Bands), len(names))
	}
	if err := checkBandNames(names); err != nil {
		return nil, err
	}

	result := img.WithProperties(nil)
	result.ID = ""
	result.Bands = append([]string{}, names...)
	return result, nil
}

// Unmask - every pixel becomes valid, previously invalid ones take the fill value
func (img *Image) Unmask(fill float64) *Image {
	result := img.withMeta()
	result.ID = ""
	result.Bands = img.Bands

	for b := range img.Bands {
		data := make([]float64, len(img.Data[b]))
		for i, v := range img.Data[b] {
			if img.Valid[b][i] {
				data[i] = v
			} else {
				data[i] = fill
			}
		}
		result.Data = append(result.Data, data)
		result.Valid = append(result.Valid, makeMask(len(data), true))
	}
	return result
}

// UpdateMask - pixels stay valid only where they were valid AND mask is true
func (img *Image) UpdateMask(mask []bool) (*Image, error) {
	if len(mask) != img.PixelCount() {
		return nil, fmt.Errorf("mask has %v pixels, image has %v", len(mask), img.PixelCount())
	}

	result := img.withMeta()
	result.ID = ""
	result.Bands = img.Bands
	result.Data = img.Data

	for b := range img.Bands {
		valid := make([]bool, len(mask))
		for i, m := range mask {
			valid[i] = m && img.Valid[b][i]
		}
		result.Valid = append(result.Valid, valid)
	}
	return result, nil
}

// Map - applies fn to every valid pixel of every band. If fn returns a
// non-finite value the pixel becomes invalid rather than carrying NaN/Inf on.
func (img *Image) Map(fn func(band int, v float64) float64) *Image {
	result := img.withMeta()
	result.Bands = img.Bands
	result.ID = ""

	for b := range img.Bands {
		data := make([]float64, len(img.Data[b]))
		valid := make([]bool, len(img.Data[b]))
		for i, v := range img.Data[b] {
			if !img.Valid[b][i] {
				continue
			}
			out := fn(b, v)
			if math.IsNaN(out) || math.IsInf(out, 0) {
				continue
			}
			data[i] = out
			valid[i] = true
		}
		result.Data = append(result.Data, data)
		result.Valid = append(result.Valid, valid)
	}
	return result
}

// SubtractConstants - subtracts vec[b] from band b
func (img *Image) SubtractConstants(vec []float64) (*Image, error) {
	if len(vec) != len(img.Bands) {
		return nil, fmt.Errorf("got %v values to subtract from %v bands", len(vec), len(img.Bands))
	}
	return img.Map(func(b int, v float64) float64 { return v - vec[b] }), nil
}

func (img *Image) MultiplyScalar(k float64) *Image {
	return img.Map(func(b int, v float64) float64 { return v * k })
}

func (img *Image) DivideScalar(k float64) (*Image, error) {
	if k == 0 {
		return nil, fmt.Errorf("divide by zero")
	}
	return img.Map(func(b int, v float64) float64 { return v / k }), nil
}

// TruncateInt16 - truncates towards zero and clamps to the int16 range, as
// is done when storing scaled reflectance
func (img *Image) TruncateInt16() *Image {
	return img.Map(func(b int, v float64) float64 {
		v = math.Trunc(v)
		if v > math.MaxInt16 {
			return math.MaxInt16
		}
		if v < math.MinInt16 {
			return math.MinInt16
		}
		return v
	})
}

// Clip - new image covering only region, which is clamped to our bounds
func (img *Image) Clip(region Rect) (*Image, error) {
	r := region.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("clip region %+v does not overlap image bounds %+v", region, img.Bounds())
	}

	result := img.withMeta()
	result.Bands = img.Bands
	result.Width = r.Width
	result.Height = r.Height
	result.ID = ""

	for b := range img.Bands {
		data := make([]float64, 0, r.Area())
		valid := make([]bool, 0, r.Area())
		for y := r.Y; y < r.Y+r.Height; y++ {
			start := y*img.Width + r.X
			data = append(data, img.Data[b][start:start+r.Width]...)
			valid = append(valid, img.Valid[b][start:start+r.Width]...)
		}
		result.Data = append(result.Data, data)
		result.Valid = append(result.Valid, valid)
	}
	return result, nil
}
