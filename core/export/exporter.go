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

// Writes PCA results and spectral profiles out as JSON, CSV, parquet and
// band TIFFs, either zipped up for download or stored in a FileAccess
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/pca"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/spectral"
	"github.com/pixlise/hyperspectral/core/utils"
)

const FileIdVarianceJSON = "variance-json"
const FileIdVarianceParquet = "variance-parquet"
const FileIdSpectralProfileCSV = "spectral-profile-csv"
const FileIdSpectralProfileParquet = "spectral-profile-parquet"
const FileIdComponentTIFs = "component-tifs"

// ComponentValueScale - principal component scores are stored x1000 in TIFFs
const ComponentValueScale = 1000

// Inputs - what there is to export. Profile is only needed for the spectral
// profile files, Components only for the TIFFs.
type Inputs struct {
	Report     pca.VarianceReport
	Components *raster.Image

	Source   *raster.Image
	Sensor   spectral.Sensor
	ProfileX int
	ProfileY int
}

// The actual exporter, implemented by our package. This is so we can be used as part of an interface by caller
type Exporter struct {
	Log logger.ILogger
}

// MakeExportFilesZip - writes the requested files and returns them zipped
func (m *Exporter) MakeExportFilesZip(outfileNamePrefix string, in Inputs, fileIDs []string) ([]byte, error) {
	outDir, err := os.MkdirTemp("", "hyperspec-export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(outDir)

	if err := m.writeFiles(outDir, outfileNamePrefix, in, fileIDs); err != nil {
		return nil, err
	}

	m.Log.Debugf("  Making zip")
	return utils.ZipDirectory(outDir)
}

// SaveExportFiles - writes the requested files into dir of the given storage,
// returning the paths written
func (m *Exporter) SaveExportFiles(fs fileaccess.FileAccess, bucket string, dir string, outfileNamePrefix string, in Inputs, fileIDs []string) ([]string, error) {
	outDir, err := os.MkdirTemp("", "hyperspec-export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(outDir)

	if err := m.writeFiles(outDir, outfileNamePrefix, in, fileIDs); err != nil {
		return nil, err
	}

	files, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}

	written := []string{}
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(outDir, f.Name()))
		if err != nil {
			return nil, err
		}

		savePath := dir + "/" + f.Name()
		if len(dir) <= 0 {
			savePath = f.Name()
		}
		if err := fs.WriteObject(bucket, savePath, data); err != nil {
			return nil, err
		}
		written = append(written, savePath)
	}

	m.Log.Infof("Saved %v export files to %v/%v", len(written), bucket, dir)
	return written, nil
}

func (m *Exporter) writeFiles(outDir string, outfileNamePrefix string, in Inputs, fileIDs []string) error {
	fileNamePrefix := utils.MakeSaveableFileName(outfileNamePrefix)

	wantProfile := false
	for _, id := range fileIDs {
		switch id {
		case FileIdVarianceJSON, FileIdVarianceParquet, FileIdComponentTIFs:
		case FileIdSpectralProfileCSV, FileIdSpectralProfileParquet:
			wantProfile = true
		default:
			return fmt.Errorf("Unknown export file ID: %v", id)
		}
	}

	var profile []ProfileRow
	if wantProfile {
		if in.Source == nil {
			return fmt.Errorf("Cannot export spectral profile, no source image")
		}

		var err error
		if profile, err = SpectralProfile(in.Source, in.Sensor, in.ProfileX, in.ProfileY); err != nil {
			return err
		}
	}

	for _, id := range fileIDs {
		m.Log.Debugf("  Writing %v...", id)

		var err error
		switch id {
		case FileIdVarianceJSON:
			var data []byte
			if data, err = json.MarshalIndent(in.Report, "", utils.PrettyPrintIndentForJSON); err == nil {
				err = os.WriteFile(filepath.Join(outDir, fileNamePrefix+"-variance.json"), data, 0644)
			}
		case FileIdVarianceParquet:
			err = WriteVarianceReportParquet(filepath.Join(outDir, fileNamePrefix+"-variance.parquet"), in.Report)
		case FileIdSpectralProfileCSV:
			err = writeProfileCSVFile(filepath.Join(outDir, fileNamePrefix+"-profile.csv"), profile)
		case FileIdSpectralProfileParquet:
			err = WriteSpectralProfileParquet(filepath.Join(outDir, fileNamePrefix+"-profile.parquet"), profile)
		case FileIdComponentTIFs:
			if in.Components == nil {
				return fmt.Errorf("Cannot export component TIFs, no component image")
			}
			err = raster.SaveImage(&fileaccess.FSAccess{}, outDir, "", in.Components, ComponentValueScale)
		}

		if err != nil {
			return fmt.Errorf("Failed to write %v: %v", id, err)
		}
	}

	return nil
}

func writeProfileCSVFile(path string, profile []ProfileRow) error {
	var sb strings.Builder
	if err := writeSpectralProfileCSV(path, profile, &sb); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}
