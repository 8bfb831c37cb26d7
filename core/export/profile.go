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

package export

import (
	"fmt"
	"io"

	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/spectral"
)

// SpectralProfile - every band of img at pixel x, y with its centre
// wavelength. Band names must be the sensor's product band names.
func SpectralProfile(img *raster.Image, sensor spectral.Sensor, x int, y int) ([]ProfileRow, error) {
	if !img.Bounds().Contains(x, y) {
		return nil, fmt.Errorf("pixel %v,%v is outside image bounds %+v", x, y, img.Bounds())
	}

	wavelengths, err := spectral.Wavelengths(sensor)
	if err != nil {
		return nil, err
	}

	rows := make([]ProfileRow, 0, len(img.Bands))
	for b, name := range img.Bands {
		idx, err := spectral.BandIndex(sensor, name)
		if err != nil {
			return nil, err
		}

		v, ok := img.At(b, x, y)
		if !ok {
			v = 0
		}
		rows = append(rows, ProfileRow{
			Band:       name,
			BandIndex:  int32(idx),
			Wavelength: wavelengths[idx],
			Value:      v,
			Valid:      ok,
		})
	}
	return rows, nil
}

func writeSpectralProfileCSV(path string, profile []ProfileRow, csv io.StringWriter) error {
	if len(profile) <= 0 {
		return fmt.Errorf("No bands for writeSpectralProfileCSV when writing %v", path)
	}

	if _, err := csv.WriteString("band,band_index,wavelength_nm,value\n"); err != nil {
		return err
	}

	for _, row := range profile {
		value := ""
		if row.Valid {
			value = fmt.Sprintf("%v", row.Value)
		}

		if _, err := csv.WriteString(fmt.Sprintf("%v,%v,%v,%v\n", row.Band, row.BandIndex, row.Wavelength, value)); err != nil {
			return err
		}
	}
	return nil
}
