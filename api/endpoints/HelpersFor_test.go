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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gorilla/mux"
	"github.com/pixlise/hyperspectral/api/config"
	"github.com/pixlise/hyperspectral/api/services"
	"github.com/pixlise/hyperspectral/core/catalog"
	"github.com/pixlise/hyperspectral/core/export"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pixlise/hyperspectral/core/spectral"
	"github.com/pixlise/hyperspectral/core/timestamper"
)

const DataBucketForUnitTest = "data-bucket"
const ExportBucketForUnitTest = "export-bucket"

var day1 = time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
var day2 = day1.AddDate(0, 0, 1)

type MockExporter struct {
	downloadReturn []byte
	prefix         string
	inputs         export.Inputs
	fileIDs        []string
}

func (m *MockExporter) MakeExportFilesZip(outfileNamePrefix string, in export.Inputs, fileIDs []string) ([]byte, error) {
	m.prefix = outfileNamePrefix
	m.inputs = in
	m.fileIDs = fileIDs
	return m.downloadReturn, nil
}

func saveTestScene(fs fileaccess.FileAccess, id string, coll string, sensor spectral.Sensor, when time.Time, footprint raster.Rect, bands []string, data [][]float64, valueScale float64) catalog.Scene {
	img, err := raster.FromBandData(bands, footprint.Width, footprint.Height, data)
	if err != nil {
		panic(err)
	}

	dir := "scenes/" + id
	if err := raster.SaveImage(fs, DataBucketForUnitTest, dir, img, valueScale); err != nil {
		panic(err)
	}

	return catalog.Scene{
		ID:               id,
		Collection:       coll,
		Sensor:           sensor,
		TimeStartUnixSec: when.Unix(),
		Footprint:        footprint,
		Bucket:           DataBucketForUnitTest,
		Dir:              dir,
	}
}

// 2x2 PACE scenes with just the NDVI bands. In s1 the bands are
// uncorrelated with equal variance.
func makePACEScenes(fs fileaccess.FileAccess) []catalog.Scene {
	bands := []string{"b60", "b111"}
	fp := raster.Rect{X: 0, Y: 0, Width: 2, Height: 2}

	return []catalog.Scene{
		saveTestScene(fs, "s1", "PACE/L2", spectral.PACE, day1, fp, bands, [][]float64{{1, 3, 1, 3}, {2, 2, 4, 4}}, 1),
		saveTestScene(fs, "s2", "PACE/L2", spectral.PACE, day2, fp, bands, [][]float64{{5, 5, 5, 5}, {6, 6, 6, 6}}, 1),
	}
}

// EMIT scenes on a 3x1 grid, values are multiples of 1/8 so they survive
// scaling to int16 x 10000 exactly
func makeEMITScenes(fs fileaccess.FileAccess) []catalog.Scene {
	bands := spectral.BandNames(spectral.EMIT)

	makeData := func(base float64) [][]float64 {
		data := make([][]float64, len(bands))
		for b := range data {
			data[b] = []float64{base + float64(b%8)/8, base}
		}
		return data
	}

	return []catalog.Scene{
		saveTestScene(fs, "e1", catalog.EMITCollection, spectral.EMIT, day1.Add(2*time.Hour), raster.Rect{X: 0, Y: 0, Width: 2, Height: 1}, bands, makeData(0), 10000),
		saveTestScene(fs, "e2", catalog.EMITCollection, spectral.EMIT, day1.Add(3*time.Hour), raster.Rect{X: 1, Y: 0, Width: 2, Height: 1}, bands, makeData(1), 10000),
		saveTestScene(fs, "e3", catalog.EMITCollection, spectral.EMIT, day2.Add(time.Hour), raster.Rect{X: 0, Y: 0, Width: 2, Height: 1}, bands, makeData(2), 10000),
	}
}

func MakeMockSvcs(exporter services.ExportZipper, logLevel *logger.LogLevel) services.APIServices {
	cfg := config.APIConfig{
		EnvironmentName: "unit-test",
		DataBucket:      DataBucketForUnitTest,
		ExportBucket:    ExportBucketForUnitTest,
	}
	cfg.ApplyDefaults()

	var iLog logger.ILogger = &logger.NullLogger{}
	if logLevel != nil {
		cfg.LogLevel = *logLevel
		stdLog := &logger.StdOutLogger{}
		stdLog.SetLogLevel(*logLevel)
		iLog = stdLog
	}

	fs := fileaccess.MakeMemoryAccess()
	scenes := append(makePACEScenes(fs), makeEMITScenes(fs)...)

	if exporter == nil {
		exporter = &export.Exporter{Log: iLog}
	}

	return services.APIServices{
		Config:      cfg,
		Log:         iLog,
		FS:          fs,
		Catalog:     catalog.MakeMemoryCatalog(fs, scenes...),
		Backend:     reduce.MakeLocalBackend(2, iLog),
		Exporter:    exporter,
		TimeStamper: &timestamper.MockTimeNowStamper{QueuedTimeStamps: []int64{1700000000}},
	}
}

// executeRequest - runs req the way the server would, which always supplies a body
func executeRequest(req *http.Request, router *mux.Router) *httptest.ResponseRecorder {
	if req.Body == nil {
		req.Body = http.NoBody
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// printJSONField - decodes the response and prints one top level field, or the error body
func printJSONField(resp *httptest.ResponseRecorder, field string) {
	if resp.Code != http.StatusOK {
		fmt.Printf("%v %v", resp.Code, resp.Body.String())
		return
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%v: %v\n", field, body[field])
}
