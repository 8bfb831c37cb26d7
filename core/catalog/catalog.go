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

// Scene catalog: where each acquired scene's rasters live, when it was taken
// and which part of the shared pixel grid it covers. Collections of scenes can
// be filtered, mapped and composited into a single image.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/spectral"
)

// Scene - one acquisition. Footprint is in pixel coordinates of the grid all
// scenes of a collection share, and matches the stored raster's size.
type Scene struct {
	ID               string          `bson:"_id" json:"id"`
	Collection       string          `bson:"collection" json:"collection"`
	Sensor           spectral.Sensor `bson:"sensor" json:"sensor"`
	TimeStartUnixSec int64           `bson:"timestartunixsec" json:"timeStartUnixSec"`
	Footprint        raster.Rect     `bson:"footprint" json:"footprint"`
	Bucket           string          `bson:"bucket" json:"bucket"`
	Dir              string          `bson:"dir" json:"dir"`
}

func (s Scene) TimeStart() time.Time {
	return time.Unix(s.TimeStartUnixSec, 0).UTC()
}

// Query - zero fields are not filtered on. From is inclusive, To exclusive.
type Query struct {
	Collection string
	From       time.Time
	To         time.Time
	Bounds     *raster.Rect
}

func (q Query) matches(s Scene) bool {
	if len(q.Collection) > 0 && s.Collection != q.Collection {
		return false
	}
	if !q.From.IsZero() && s.TimeStartUnixSec < q.From.Unix() {
		return false
	}
	if !q.To.IsZero() && s.TimeStartUnixSec >= q.To.Unix() {
		return false
	}
	if q.Bounds != nil && !s.Footprint.Overlaps(*q.Bounds) {
		return false
	}
	return true
}

type Catalog interface {
	// Find - scenes matching q, ordered by time then ID
	Find(ctx context.Context, q Query) ([]Scene, error)
	Get(ctx context.Context, id string) (Scene, error)
	Put(ctx context.Context, scene Scene) error
	Load(ctx context.Context, scene Scene) (*raster.Image, error)
}

func loadScene(fs fileaccess.FileAccess, scene Scene) (*raster.Image, error) {
	img, err := raster.LoadImage(fs, scene.Bucket, scene.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %v: %v", scene.ID, err)
	}

	if !scene.Footprint.Empty() && (img.Width != scene.Footprint.Width || img.Height != scene.Footprint.Height) {
		return nil, fmt.Errorf("scene %v raster is %vx%v but footprint is %vx%v", scene.ID, img.Width, img.Height, scene.Footprint.Width, scene.Footprint.Height)
	}

	return img.WithID(scene.ID).WithTimeStart(scene.TimeStartUnixSec * 1000), nil
}
