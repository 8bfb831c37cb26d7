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

package utils

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"time"
)

// ZipDirectory - zips the files directly inside dirPath, subdirectories are skipped
func ZipDirectory(dirPath string) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	files, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		header := &zip.FileHeader{
			Name:     file.Name(),
			Method:   zip.Deflate,
			Modified: time.Now(),
		}

		f, err := w.CreateHeader(header)
		if err != nil {
			return nil, err
		}

		contents, err := os.ReadFile(filepath.Join(dirPath, file.Name()))
		if err != nil {
			return nil, err
		}

		if _, err = f.Write(contents); err != nil {
			return nil, err
		}
	}

	// Make sure to check the error on Close.
	if err = w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
