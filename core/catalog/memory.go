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
	"errors"
	"sort"
	"sync"

	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/raster"
)

// MemoryCatalog - scenes held in memory, rasters in a FileAccess. Used by the
// command line tools and in tests.
type MemoryCatalog struct {
	fs     fileaccess.FileAccess
	mutex  sync.Mutex
	scenes map[string]Scene
}

func MakeMemoryCatalog(fs fileaccess.FileAccess, scenes ...Scene) *MemoryCatalog {
	c := &MemoryCatalog{fs: fs, scenes: map[string]Scene{}}
	for _, s := range scenes {
		c.scenes[s.ID] = s
	}
	return c
}

func (c *MemoryCatalog) Find(ctx context.Context, q Query) ([]Scene, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	result := []Scene{}
	for _, s := range c.scenes {
		if q.matches(s) {
			result = append(result, s)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TimeStartUnixSec != result[j].TimeStartUnixSec {
			return result[i].TimeStartUnixSec < result[j].TimeStartUnixSec
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (c *MemoryCatalog) Get(ctx context.Context, id string) (Scene, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	s, ok := c.scenes[id]
	if !ok {
		return s, errorwithstatus.MakeNotFoundError(id)
	}
	return s, nil
}

func (c *MemoryCatalog) Put(ctx context.Context, scene Scene) error {
	if len(scene.ID) <= 0 {
		return errors.New("scene has no ID")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.scenes[scene.ID] = scene
	return nil
}

func (c *MemoryCatalog) Load(ctx context.Context, scene Scene) (*raster.Image, error) {
	return loadScene(c.fs, scene)
}
