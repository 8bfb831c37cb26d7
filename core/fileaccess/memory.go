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
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pixlise/hyperspectral/core/utils"
)

var errMemNotFound = fmt.Errorf("object not found")

// MemoryAccess - in-memory file access, used by unit tests and as a scratch
// store when running without a storage root
type MemoryAccess struct {
	mutex   sync.Mutex
	objects map[string][]byte
}

func MakeMemoryAccess() *MemoryAccess {
	return &MemoryAccess{objects: map[string][]byte{}}
}

func memKey(bucket string, path string) string {
	return bucket + "/" + path
}

func (m *MemoryAccess) ListObjects(bucket string, prefix string) ([]string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result := []string{}
	for k := range m.objects {
		if p, ok := strings.CutPrefix(k, bucket+"/"); ok && strings.HasPrefix(p, prefix) {
			result = append(result, p)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *MemoryAccess) ObjectExists(bucket string, path string) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.objects[memKey(bucket, path)]
	return ok, nil
}

func (m *MemoryAccess) ReadObject(bucket string, path string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, ok := m.objects[memKey(bucket, path)]
	if !ok {
		return nil, fmt.Errorf("%w: %v", errMemNotFound, memKey(bucket, path))
	}
	return append([]byte{}, data...), nil
}

func (m *MemoryAccess) WriteObject(bucket string, path string, data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.objects[memKey(bucket, path)] = append([]byte{}, data...)
	return nil
}

func (m *MemoryAccess) ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := m.ReadObject(bucket, path)
	if err != nil {
		if emptyIfNotFound && m.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (m *MemoryAccess) WriteJSON(bucket string, path string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", utils.PrettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return m.WriteObject(bucket, path, fileData)
}

func (m *MemoryAccess) DeleteObject(bucket string, path string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	k := memKey(bucket, path)
	if _, ok := m.objects[k]; !ok {
		return fmt.Errorf("%w: %v", errMemNotFound, k)
	}
	delete(m.objects, k)
	return nil
}

func (m *MemoryAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, errMemNotFound)
}
