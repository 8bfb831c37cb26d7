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

package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pixlise/hyperspectral/core/spectral"
	"github.com/pkg/errors"
)

var day1 = time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
var day2 = day1.AddDate(0, 0, 1)

// saveScene - writes a scene's raster and returns its catalog entry
func saveScene(fs fileaccess.FileAccess, id string, coll string, when time.Time, footprint raster.Rect, bands []string, data [][]float64, valueScale float64) Scene {
	img, err := raster.FromBandData(bands, footprint.Width, footprint.Height, data)
	if err != nil {
		panic(err)
	}

	dir := "scenes/" + id
	if err := raster.SaveImage(fs, "data", dir, img, valueScale); err != nil {
		panic(err)
	}

	return Scene{ID: id, Collection: coll, TimeStartUnixSec: when.Unix(), Footprint: footprint, Bucket: "data", Dir: dir}
}

func makeTestCatalog() *MemoryCatalog {
	fs := fileaccess.MakeMemoryAccess()
	ab := []string{"a", "b"}

	s1 := saveScene(fs, "s1", "test", day1, raster.Rect{X: 0, Y: 0, Width: 2, Height: 1}, ab, [][]float64{{1, 2}, {10, 20}}, 1)
	s2 := saveScene(fs, "s2", "test", day1.Add(time.Hour), raster.Rect{X: 1, Y: 0, Width: 2, Height: 1}, ab, [][]float64{{4, 8}, {40, 80}}, 1)
	s3 := saveScene(fs, "s3", "test", day2, raster.Rect{X: 0, Y: 0, Width: 3, Height: 1}, ab, [][]float64{{3, 3, 3}, {30, 30, 30}}, 1)

	// Knock out one pixel of s3 band a
	img, _ := raster.LoadImage(fs, "data", s3.Dir)
	img.Valid[0][2] = false
	raster.SaveImage(fs, "data", s3.Dir, img, 1)

	return MakeMemoryCatalog(fs, s3, s2, s1)
}

func printImage(img *raster.Image, err error) {
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%vx%v %v\n", img.Width, img.Height, img.Bands)
	for b := range img.Bands {
		fmt.Println(img.Data[b], img.Valid[b])
	}
}

func sceneIDs(scenes []Scene) []string {
	ids := []string{}
	for _, s := range scenes {
		ids = append(ids, s.ID)
	}
	return ids
}

func Example_collectionFilters() {
	ctx := context.Background()
	cat := makeTestCatalog()

	coll, err := FromCatalog(ctx, cat, Query{Collection: "test"})
	fmt.Println(err, sceneIDs(coll.Scenes()), coll.Extent())

	fmt.Println(sceneIDs(coll.FilterDate(day1, day2).Scenes()))
	fmt.Println(sceneIDs(coll.FilterDate(day2, day2.AddDate(0, 0, 1)).Scenes()))
	fmt.Println(sceneIDs(coll.FilterBounds(raster.Rect{X: 2, Y: 0, Width: 1, Height: 1}).Scenes()))
	fmt.Println(coll.FilterBounds(raster.Rect{X: 5, Y: 5, Width: 1, Height: 1}).Size())

	none, err := FromCatalog(ctx, cat, Query{Collection: "other"})
	fmt.Println(err, none.Size())

	// Output:
	// <nil> [s1 s2 s3] {X:0 Y:0 Width:3 Height:1}
	// [s1 s2]
	// [s3]
	// [s2 s3]
	// 0
	// <nil> 0
}

func Example_collectionMedian() {
	ctx := context.Background()
	coll, _ := FromCatalog(ctx, makeTestCatalog(), Query{Collection: "test"})

	printImage(coll.Median(ctx, nil))
	printImage(coll.FilterDate(day1, day2).Median(ctx, nil))
	printImage(coll.Select(1).Median(ctx, &raster.Rect{X: 1, Y: 0, Width: 5, Height: 5}))

	// Output:
	// 3x1 [a b]
	// [2 3 8] [true true true]
	// [20 30 55] [true true true]
	// 3x1 [a b]
	// [1 3 8] [true true true]
	// [10 30 80] [true true true]
	// 2x1 [b]
	// [30 55] [true true]
}

func Example_collectionMap() {
	ctx := context.Background()
	coll, _ := FromCatalog(ctx, makeTestCatalog(), Query{Collection: "test"})

	doubled := coll.Map(func(img *raster.Image) (*raster.Image, error) {
		return img.MultiplyScalar(2), nil
	})

	images, err := doubled.Images(ctx)
	fmt.Println(err, len(images))
	fmt.Println(images[0].Data[0], images[2].Data[0], images[2].Valid[0])

	// Original collection unaffected
	images, _ = coll.Images(ctx)
	fmt.Println(images[0].Data[0], images[0].ID)
	ts, _ := images[0].TimeStart()
	fmt.Println(ts)

	// Output:
	// <nil> 3
	// [2 4] [6 6 0] [true true false]
	// [1 2] s1
	// 1690848000000
}

func Example_collectionErrors() {
	ctx := context.Background()
	cat := makeTestCatalog()
	coll, _ := FromCatalog(ctx, cat, Query{Collection: "test"})

	_, err := coll.FilterDate(day1.AddDate(1, 0, 0), day2.AddDate(1, 0, 0)).Median(ctx, nil)
	fmt.Println(err, errors.Is(err, reduce.ErrInvalidInput))

	_, err = coll.Median(ctx, &raster.Rect{X: 10, Y: 10, Width: 2, Height: 2})
	fmt.Println(err)

	// Scenes load concurrently so any one of them may report first
	_, err = coll.Select(5).Median(ctx, nil)
	fmt.Println(strings.HasSuffix(err.Error(), "band index 5 out of range, image has 2 bands"))

	// Mismatched bands
	bad := coll.Map(func(img *raster.Image) (*raster.Image, error) {
		if img.ID == "s2" {
			return img.Rename("x", "y")
		}
		return img, nil
	})
	_, err = bad.Median(ctx, nil)
	fmt.Println(err)

	// Output:
	// collection is empty: invalid input true
	// clip region {X:10 Y:10 Width:2 Height:2} does not overlap collection extent {X:0 Y:0 Width:3 Height:1}: invalid input
	// true
	// scene s2 bands differ from scene s1: invalid input
}

func Test_MemoryCatalogGetPut(t *testing.T) {
	ctx := context.Background()
	cat := makeTestCatalog()

	s, err := cat.Get(ctx, "s2")
	if err != nil || s.TimeStart() != day1.Add(time.Hour) {
		t.Errorf("unexpected scene: %+v, %v", s, err)
	}

	_, err = cat.Get(ctx, "nope")
	if errorwithstatus.StatusOf(err) != 404 {
		t.Errorf("expected not found, got %v", err)
	}

	if err := cat.Put(ctx, Scene{}); err == nil {
		t.Error("expected error putting scene with no ID")
	}

	s.ID = "s4"
	s.TimeStartUnixSec = day1.Add(-time.Hour).Unix()
	if err := cat.Put(ctx, s); err != nil {
		t.Error(err)
	}

	found, _ := cat.Find(ctx, Query{To: day2})
	if fmt.Sprintf("%v", sceneIDs(found)) != "[s4 s1 s2]" {
		t.Errorf("unexpected find result: %v", sceneIDs(found))
	}
}

func Test_LoadChecksFootprint(t *testing.T) {
	ctx := context.Background()
	cat := makeTestCatalog()

	s, _ := cat.Get(ctx, "s1")
	s.Footprint.Width = 5
	if _, err := cat.Load(ctx, s); err == nil {
		t.Error("expected footprint mismatch error")
	}

	s.Dir = "scenes/missing"
	if _, err := cat.Load(ctx, s); err == nil {
		t.Error("expected missing scene error")
	}
}

func makeEMITCatalog() *MemoryCatalog {
	fs := fileaccess.MakeMemoryAccess()
	bands := spectral.BandNames(spectral.EMIT)

	makeData := func(base float64) [][]float64 {
		data := make([][]float64, len(bands))
		for b := range data {
			// Multiples of 1/8 survive the x10000 scaling exactly
			data[b] = []float64{base + float64(b%8)/8, base}
		}
		return data
	}

	roi := raster.Rect{X: 0, Y: 0, Width: 2, Height: 1}
	return MakeMemoryCatalog(fs,
		saveScene(fs, "e1", EMITCollection, day1.Add(2*time.Hour), roi, bands, makeData(0), 10000),
		saveScene(fs, "e2", EMITCollection, day1.Add(3*time.Hour), raster.Rect{X: 1, Y: 0, Width: 2, Height: 1}, bands, makeData(1), 10000),
		saveScene(fs, "e3", EMITCollection, day2.Add(time.Hour), roi, bands, makeData(2), 10000),
	)
}

func Test_EMITSurfaceReflectance(t *testing.T) {
	ctx := context.Background()
	cat := makeEMITCatalog()
	roi := raster.Rect{X: 0, Y: 0, Width: 2, Height: 1}

	img, err := EMITSurfaceReflectance(ctx, cat, roi, day1)
	if err != nil {
		t.Fatal(err)
	}

	if img.BandCount() != 243 || img.Bands[0] != "reflectance_0" || img.Bands[127] != "reflectance_143" || img.Bands[242] != "reflectance_284" {
		t.Errorf("unexpected bands: %v", img.Bands)
	}

	// Not clipped: covers both day 1 scenes
	if img.Width != 3 || img.Height != 1 {
		t.Errorf("unexpected size %vx%v", img.Width, img.Height)
	}

	// Band 1: e1 = [0.125, 0], e2 = [1.125, 1] at x=1..2
	if fmt.Sprintf("%v", img.Data[1]) != "[1250 5625 10000]" {
		t.Errorf("unexpected band 1: %v", img.Data[1])
	}

	if ts, ok := img.TimeStart(); !ok || ts != day1.UnixMilli() {
		t.Errorf("unexpected time start %v %v", ts, ok)
	}

	full, err := EMITFull(ctx, cat, roi, day2)
	if err != nil {
		t.Fatal(err)
	}
	if full.BandCount() != 285 || full.Width != 2 || full.Data[3][0] != 23750 {
		t.Errorf("unexpected full image: %v bands %vx%v %v", full.BandCount(), full.Width, full.Height, full.Data[3])
	}
}

func Test_EMITSurfaceReflectanceRange(t *testing.T) {
	ctx := context.Background()
	cat := makeEMITCatalog()
	roi := raster.Rect{X: 0, Y: 0, Width: 2, Height: 1}

	img, err := EMITSurfaceReflectanceRange(ctx, cat, roi, day1, day2.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	if img.BandCount() != 243 || img.Width != 2 {
		t.Errorf("unexpected image: %v bands %vx%v", img.BandCount(), img.Width, img.Height)
	}

	// x=0: e1 0, e3 2 -> 1. x=1: e1 0, e2 1, e3 2 -> 1 for band 0
	if fmt.Sprintf("%v", img.Data[0]) != "[10000 10000]" {
		t.Errorf("unexpected band 0: %v", img.Data[0])
	}

	full, err := EMITFullRange(ctx, cat, roi, day1, day2)
	if err != nil {
		t.Fatal(err)
	}
	if full.BandCount() != 285 || full.Width != 2 {
		t.Errorf("unexpected full image: %v bands %vx%v", full.BandCount(), full.Width, full.Height)
	}

	_, err = EMITSurfaceReflectanceRange(ctx, cat, raster.Rect{X: 50, Y: 50, Width: 1, Height: 1}, day1, day2)
	if !errors.Is(err, reduce.ErrInvalidInput) {
		t.Errorf("expected invalid input for empty collection, got %v", err)
	}
}

func Test_EMITRescaled(t *testing.T) {
	ctx := context.Background()
	coll, err := EMITRescaled(ctx, makeEMITCatalog())
	if err != nil {
		t.Fatal(err)
	}

	images, err := coll.Images(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %v", len(images))
	}

	for i, img := range images {
		ts, ok := img.TimeStart()
		if !ok || ts != coll.Scenes()[i].TimeStartUnixSec*1000 {
			t.Errorf("image %v lost its time start: %v", i, ts)
		}
	}

	if fmt.Sprintf("%v", images[2].Data[2]) != "[22500 20000]" {
		t.Errorf("unexpected rescaled data: %v", images[2].Data[2])
	}
}
