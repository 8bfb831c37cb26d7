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
	"fmt"
	"testing"

	"github.com/pixlise/hyperspectral/core/fileaccess"
)

// 3x2 image, 2 bands, pixel (2,1) invalid in band b
func makeTestImage() *Image {
	img, _ := FromBandData([]string{"a", "b"}, 3, 2, [][]float64{
		{1, 2, 3, 4, 5, 6},
		{10, 20, 30, 40, 50, 60},
	})
	img.Valid[1][5] = false
	img.ID = "test"
	return img
}

func Example_rect() {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 5}
	fmt.Println(r.Area(), r.Contains(9, 4), r.Contains(10, 4))
	fmt.Printf("%+v\n", r.Intersect(Rect{X: 8, Y: 3, Width: 10, Height: 10}))
	fmt.Printf("%+v %v\n", r.Intersect(Rect{X: 20, Y: 0, Width: 1, Height: 1}), r.Overlaps(Rect{X: 20, Y: 0, Width: 1, Height: 1}))

	// Output:
	// 50 true false
	// {X:8 Y:3 Width:2 Height:2}
	// {X:0 Y:0 Width:0 Height:0} false
}

func Example_newImage() {
	_, err := NewImage([]string{"a"}, 0, 4)
	fmt.Println(err)
	_, err = NewImage([]string{"a", "a"}, 1, 1)
	fmt.Println(err)
	_, err = FromBandData([]string{"a"}, 2, 2, [][]float64{{1, 2, 3}})
	fmt.Println(err)

	img := makeTestImage()
	fmt.Println(img.BandCount(), img.PixelCount(), img.BandIndex("b"), img.BandIndex("c"))
	fmt.Println(img.Pixel(1, 1))
	fmt.Println(img.At(1, 2, 1))
	fmt.Println(img.Mask())
	fmt.Println(img.ValidPixelCount(img.Bounds()), img.ValidPixelCount(Rect{X: 2, Y: 0, Width: 5, Height: 5}))

	// Output:
	// invalid image size: 0x4
	// duplicate band name: a
	// band a has 3 values, expected 4
	// 2 6 1 -1
	// [5 50]
	// 60 false
	// [true true true true true false]
	// 5 1
}

func Example_select() {
	img := makeTestImage()

	sel, err := img.Select("b", "a")
	fmt.Println(err, sel.Bands, sel.Data[0][0])

	_, err = img.Select("c")
	fmt.Println(err)

	_, err = img.SelectIndices(5)
	fmt.Println(err)

	_, err = img.SelectIndices(0, 0)
	fmt.Println(err)

	// Output:
	// <nil> [b a] 10
	// band c not found in image
	// band index 5 out of range, image has 2 bands
	// duplicate band name: a
}

func Example_addBandsAndRename() {
	img := makeTestImage()
	other, _ := NewImage([]string{"c"}, 3, 2)

	both, err := img.AddBands(other)
	fmt.Println(err, both.Bands, img.Bands)

	_, err = img.AddBands(img)
	fmt.Println(err)

	small, _ := NewImage([]string{"z"}, 1, 1)
	_, err = img.AddBands(small)
	fmt.Println(err)

	cat, err := Cat(img, other)
	fmt.Println(err, cat.Bands)

	renamed, err := img.Rename("pc1", "pc2")
	fmt.Println(err, renamed.Bands, img.Bands)

	_, err = img.Rename("x")
	fmt.Println(err)

	// Output:
	// <nil> [a b c] [a b]
	// duplicate band name: a
	// cannot add bands of 1x1 image to 3x2 image
	// <nil> [a b c]
	// <nil> [pc1 pc2] [a b]
	// rename needs 2 band names, got 1
}

func Example_maskOps() {
	img := makeTestImage()

	unmasked := img.Unmask(0)
	fmt.Println(unmasked.Mask(), unmasked.Data[1])
	fmt.Println(img.Valid[1][5], img.Data[1][5])

	updated, err := img.UpdateMask([]bool{false, true, true, true, true, true})
	fmt.Println(err, updated.Mask())

	_, err = img.UpdateMask([]bool{true})
	fmt.Println(err)

	// Output:
	// [true true true true true true] [10 20 30 40 50 0]
	// false 60
	// <nil> [false true true true true false]
	// mask has 1 pixels, image has 6
}

func Example_derivedImagesDropID() {
	img := makeTestImage()

	updated, _ := img.UpdateMask([]bool{false, true, true, true, true, true})
	renamed, _ := img.Rename("x", "y")
	fmt.Printf("%q %q %q\n", updated.ID, img.Unmask(0).ID, renamed.ID)

	// Metadata only, pixels are the same
	fmt.Println(img.WithTimeStart(1690848000000).ID, img.WithProperties(map[string]string{"k": "v"}).ID)

	// Output:
	// "" "" ""
	// test test
}

func Example_arithmetic() {
	img := makeTestImage()

	sub, err := img.SubtractConstants([]float64{1, 10})
	fmt.Println(err, sub.Data[0], sub.Data[1][:5], sub.Valid[1][5])

	_, err = img.SubtractConstants([]float64{1})
	fmt.Println(err)

	mul := img.MultiplyScalar(2)
	fmt.Println(mul.Data[0])

	div, err := img.DivideScalar(4)
	fmt.Println(err, div.Data[0])

	_, err = img.DivideScalar(0)
	fmt.Println(err)

	trunc := img.MultiplyScalar(10000.7).TruncateInt16()
	fmt.Println(trunc.Data[0])

	// Output:
	// <nil> [0 1 2 3 4 5] [0 10 20 30 40] false
	// got 1 values to subtract from 2 bands
	// [2 4 6 8 10 12]
	// <nil> [0.25 0.5 0.75 1 1.25 1.5]
	// divide by zero
	// [10000 20001 30002 32767 32767 32767]
}

func Example_clip() {
	img := makeTestImage()

	clipped, err := img.Clip(Rect{X: 1, Y: 0, Width: 10, Height: 10})
	fmt.Println(err, clipped.Width, clipped.Height, clipped.Data[0], clipped.Valid[1])

	_, err = img.Clip(Rect{X: 5, Y: 5, Width: 1, Height: 1})
	fmt.Println(err)

	// Output:
	// <nil> 2 2 [2 3 5 6] [true true true false]
	// clip region {X:5 Y:5 Width:1 Height:1} does not overlap image bounds {X:0 Y:0 Width:3 Height:2}
}

func Example_expression() {
	img := makeTestImage()

	nd, err := img.NormalizedDifference("b", "a")
	fmt.Println(err, nd.Bands)
	fmt.Printf("%.4f %v\n", nd.Data[0][0], nd.Valid[0][5])

	zero, _ := FromBandData([]string{"a", "b"}, 1, 1, [][]float64{{1}, {-1}})
	nd, _ = zero.NormalizedDifference("a", "b")
	fmt.Println(nd.Valid[0][0])

	_, err = img.Expression("x", map[string]string{"n": "nir"}, func(v map[string]float64) float64 { return v["n"] })
	fmt.Println(err)

	// Output:
	// <nil> [nd]
	// 0.8182 false
	// false
	// expression variable n refers to band nir which is not in image
}

func Example_properties() {
	img := makeTestImage()
	_, ok := img.TimeStart()
	fmt.Println(ok)

	dated := img.WithTimeStart(1690848000000)
	t, ok := dated.TimeStart()
	fmt.Println(t, ok, len(img.Properties))

	sel, _ := dated.Select("a")
	out := sel.CopyTimeStart(dated).WithID("derived")
	t, ok = out.TimeStart()
	fmt.Println(t, ok, out.ID, dated.ID)

	// Output:
	// false
	// 1690848000000 true 0
	// 1690848000000 true derived test
}

func Test_TIFFRoundTrip(t *testing.T) {
	data := []float64{0.1234, -0.5, 0, 1.5, 2.25, -3}
	valid := []bool{true, true, true, false, true, true}

	fileData, err := EncodeBandTIFF(3, 2, data, valid, 10000)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	w, h, gotData, gotValid, err := DecodeBandTIFF(fileData, 10000)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if w != 3 || h != 2 {
		t.Fatalf("got size %vx%v", w, h)
	}

	for i := range data {
		if gotValid[i] != valid[i] {
			t.Errorf("pixel %v validity: got %v, expected %v", i, gotValid[i], valid[i])
		}
		if valid[i] && gotData[i] != data[i] {
			t.Errorf("pixel %v value: got %v, expected %v", i, gotData[i], data[i])
		}
	}

	if _, err := EncodeBandTIFF(3, 3, data, valid, 1); err == nil {
		t.Errorf("expected size mismatch error")
	}
	if _, _, _, _, err := DecodeBandTIFF([]byte("not a tiff"), 1); err == nil {
		t.Errorf("expected decode error")
	}
}

func Test_SaveLoadImage(t *testing.T) {
	fs := fileaccess.MakeMemoryAccess()
	img := makeTestImage().WithTimeStart(1690848000000)
	img.CRS = "EPSG:32611"
	img.Scale = 60

	if err := SaveImage(fs, "bucket", "scenes/test", img, 100); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	files, _ := fs.ListObjects("bucket", "scenes/test/")
	if len(files) != 3 {
		t.Errorf("expected 3 files, got %v", files)
	}

	loaded, err := LoadImage(fs, "bucket", "scenes/test")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.ID != "test" || loaded.CRS != "EPSG:32611" || loaded.Scale != 60 {
		t.Errorf("metadata not restored: %v %v %v", loaded.ID, loaded.CRS, loaded.Scale)
	}
	if ts, ok := loaded.TimeStart(); !ok || ts != 1690848000000 {
		t.Errorf("time start not restored: %v %v", ts, ok)
	}
	if fmt.Sprintf("%v", loaded.Bands) != "[a b]" {
		t.Errorf("bands: %v", loaded.Bands)
	}
	if fmt.Sprintf("%v", loaded.Data[1][:5]) != "[10 20 30 40 50]" || loaded.Valid[1][5] {
		t.Errorf("band b not restored: %v %v", loaded.Data[1], loaded.Valid[1])
	}

	if _, err := LoadImage(fs, "bucket", "scenes/missing"); err == nil || !fs.IsNotFoundError(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}
