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
	"strconv"

	"github.com/pixlise/hyperspectral/core/pca"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"
)

// VarianceRow - one principal component of a variance report
type VarianceRow struct {
	Component   string  `parquet:"name=component, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN"`
	Eigenvalue  float64 `parquet:"name=eigenvalue, type=DOUBLE"`
	Percentage  float64 `parquet:"name=percentage, type=DOUBLE"`
	PixelCount  int64   `parquet:"name=pixel_count, type=INT64"`
	Approximate bool    `parquet:"name=approximate, type=BOOLEAN"`
}

// ProfileRow - one band of a pixel's spectrum
type ProfileRow struct {
	Band       string  `parquet:"name=band, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN"`
	BandIndex  int32   `parquet:"name=band_index, type=INT32"`
	Wavelength float64 `parquet:"name=wavelength_nm, type=DOUBLE"`
	Value      float64 `parquet:"name=value, type=DOUBLE"`
	Valid      bool    `parquet:"name=valid, type=BOOLEAN"`
}

func MakeVarianceRows(report pca.VarianceReport) ([]VarianceRow, error) {
	rows := []VarianceRow{}
	for c, key := range report.Keys() {
		pct, err := strconv.ParseFloat(report.Percentages[key], 64)
		if err != nil {
			return nil, fmt.Errorf("bad percentage for component %v: %v", key, err)
		}

		row := VarianceRow{
			Component:   key,
			Percentage:  pct,
			PixelCount:  report.PixelCount,
			Approximate: report.Approximate,
		}
		if c < len(report.Eigenvalues) {
			row.Eigenvalue = report.Eigenvalues[c]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func WriteVarianceReportParquet(path string, report pca.VarianceReport) error {
	rows, err := MakeVarianceRows(report)
	if err != nil {
		return err
	}
	return writeParquet(path, rows)
}

func WriteSpectralProfileParquet(path string, profile []ProfileRow) error {
	return writeParquet(path, profile)
}

// writeParquet - ZSTD compressed parquet file of rows at a local path
func writeParquet[T any](path string, rows []T) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file %v: %v", path, err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(T), 4)
	if err != nil {
		return fmt.Errorf("failed to initialise parquet writer: %v", err)
	}
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("parquet write error: %v", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalise parquet file %v: %v", path, err)
	}
	return nil
}

// ReadParquet - reads back every row of a file written by this package
func ReadParquet[T any](path string) ([]T, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(T), 4)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	rows := make([]T, int(pr.GetNumRows()))
	if err := pr.Read(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
