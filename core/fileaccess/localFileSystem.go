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

package fileaccess

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pixlise/hyperspectral/core/utils"
)

// Implementation of file access using local file system
type FSAccess struct {
}

func (fsa *FSAccess) ListObjects(rootPath string, prefix string) ([]string, error) {
	result := []string{}

	rootOnly := path.Join(rootPath) // Using path.Join cleans off ./ so it matches what Walk gives us

	// Walk from the directory part of the prefix, then filter on the full prefix
	// so partial file names work like S3 prefixes
	walkFrom := fsa.filePath(rootPath, prefix)
	if len(prefix) > 0 && !strings.HasSuffix(prefix, "/") {
		walkFrom = filepath.Dir(walkFrom)
	}

	err := filepath.Walk(walkFrom, func(pathFound string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			toSave := filepath.ToSlash(pathFound)
			if strings.HasPrefix(toSave, rootOnly) {
				toSave = toSave[len(rootOnly)+1:]
			}
			if strings.HasPrefix(toSave, prefix) {
				result = append(result, toSave)
			}
		}
		return nil
	})

	// Listing a path that doesn't exist is not an error in S3 either
	if err != nil && fsa.IsNotFoundError(err) {
		return []string{}, nil
	}

	sort.Strings(result)
	return result, err
}

func (fsa *FSAccess) ObjectExists(rootPath string, path string) (bool, error) {
	_, err := os.Stat(fsa.filePath(rootPath, path))
	if err == nil {
		return true, nil
	}
	if fsa.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (fsa *FSAccess) ReadObject(rootPath string, path string) ([]byte, error) {
	return os.ReadFile(fsa.filePath(rootPath, path))
}

func (fsa *FSAccess) WriteObject(rootPath string, path string, data []byte) error {
	fullPath := fsa.filePath(rootPath, path)

	// Ensure any subdirs in between are created
	err := os.MkdirAll(filepath.Dir(fullPath), 0777)
	if err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0666)
}

func (fsa *FSAccess) ReadJSON(rootPath string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := fsa.ReadObject(rootPath, path)

	if err != nil {
		if emptyIfNotFound && fsa.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (fsa *FSAccess) WriteJSON(rootPath string, path string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return fsa.WriteObject(rootPath, path, fileData)
}

func (fsa *FSAccess) DeleteObject(rootPath string, path string) error {
	return os.Remove(fsa.filePath(rootPath, path))
}

func (fsa *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (fsa *FSAccess) filePath(rootPath string, filePath string) string {
	return path.Join(rootPath, filePath)
}
