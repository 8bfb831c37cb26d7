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

package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"path"

	"github.com/pixlise/hyperspectral/core/fileaccess"
	"golang.org/x/image/tiff"
)

// Scene bands are stored one single-channel 16 bit TIFF per band, next to a
// JSON manifest describing the scene. Stored pixel values are offset by
// 32768 so signed values fit, and stored 0 is reserved for no-data.

const ManifestFileName = "manifest.json"

const tiffOffset = 32768

type BandFile struct {
	Name string `json:"name"`
	File string `json:"file"`
	// Stored value = round(value * ValueScale)
	ValueScale float64 `json:"valueScale"`
}

type Manifest struct {
	ID         string            `json:"id"`
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	CRS        string            `json:"crs,omitempty"`
	Scale      float64           `json:"scale"`
	Properties map[string]string `json:"properties,omitempty"`
	Bands      []BandFile        `json:"bands"`
}

// EncodeBandTIFF - writes one band as a 16 bit grayscale TIFF
func EncodeBandTIFF(width, height int, data []float64, valid []bool, valueScale float64) ([]byte, error) {
	if len(data) != width*height || len(valid) != width*height {
		return nil, fmt.Errorf("band buffer size does not match %vx%v", width, height)
	}
	if valueScale == 0 {
		valueScale = 1
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			stored := uint16(0)
			if valid[i] {
				v := math.Round(data[i] * valueScale)
				v = math.Max(-tiffOffset+1, math.Min(tiffOffset-1, v))
				stored = uint16(int(v) + tiffOffset)
			}
			img.SetGray16(x, y, color.Gray16{Y: stored})
		}
	}

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBandTIFF - reads a single band TIFF written by EncodeBandTIFF. 8 bit
// images are accepted too and read as-is, with 0 treated as no-data.
func DecodeBandTIFF(fileData []byte, valueScale float64) (int, int, []float64, []bool, error) {
	img, err := tiff.Decode(bytes.NewReader(fileData))
	if err != nil {
		return 0, 0, nil, nil, err
	}
	if valueScale == 0 {
		valueScale = 1
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]float64, w*h)
	valid := make([]bool, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			switch src := img.(type) {
			case *image.Gray16:
				stored := int(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
				if stored != 0 {
					data[i] = float64(stored-tiffOffset) / valueScale
					valid[i] = true
				}
			default:
				g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				if g.Y != 0 {
					data[i] = float64(g.Y) / valueScale
					valid[i] = true
				}
			}
		}
	}

	return w, h, data, valid, nil
}

// SaveImage - writes each band as a TIFF plus a manifest into dir. valueScale
// is applied to every band before it is stored as 16 bit integers.
func SaveImage(fs fileaccess.FileAccess, bucket string, dir string, img *Image, valueScale float64) error {
	m := Manifest{
		ID:         img.ID,
		Width:      img.Width,
		Height:     img.Height,
		CRS:        img.CRS,
		Scale:      img.Scale,
		Properties: img.Properties,
	}

	for b, name := range img.Bands {
		fileName := fileaccess.MakeValidObjectName(name) + ".tif"
		fileData, err := EncodeBandTIFF(img.Width, img.Height, img.Data[b], img.Valid[b], valueScale)
		if err != nil {
			return fmt.Errorf("failed to encode band %v: %v", name, err)
		}

		if err := fs.WriteObject(bucket, path.Join(dir, fileName), fileData); err != nil {
			return err
		}

		m.Bands = append(m.Bands, BandFile{Name: name, File: fileName, ValueScale: valueScale})
	}

	return fs.WriteJSON(bucket, path.Join(dir, ManifestFileName), m)
}

// LoadImage - reads the manifest in dir and all band TIFFs it lists
func LoadImage(fs fileaccess.FileAccess, bucket string, dir string) (*Image, error) {
	m := Manifest{}
	if err := fs.ReadJSON(bucket, path.Join(dir, ManifestFileName), &m, false); err != nil {
		return nil, err
	}
	return LoadImageFromManifest(fs, bucket, dir, m)
}

func LoadImageFromManifest(fs fileaccess.FileAccess, bucket string, dir string, m Manifest) (*Image, error) {
	names := make([]string, 0, len(m.Bands))
	for _, b := range m.Bands {
		names = append(names, b.Name)
	}

	img, err := NewImage(names, m.Width, m.Height)
	if err != nil {
		return nil, fmt.Errorf("bad manifest in %v: %v", dir, err)
	}

	for c, b := range m.Bands {
		fileData, err := fs.ReadObject(bucket, path.Join(dir, b.File))
		if err != nil {
			return nil, err
		}

		w, h, data, valid, err := DecodeBandTIFF(fileData, b.ValueScale)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %v: %v", b.File, err)
		}
		if w != m.Width || h != m.Height {
			return nil, fmt.Errorf("band %v is %vx%v, manifest says %vx%v", b.Name, w, h, m.Width, m.Height)
		}

		img.Data[c] = data
		img.Valid[c] = valid
	}

	img.ID = m.ID
	img.CRS = m.CRS
	if m.Scale > 0 {
		img.Scale = m.Scale
	}
	for k, v := range m.Properties {
		img.Properties[k] = v
	}
	return img, nil
}
