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
	"runtime"
	"time"

	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// ImageOp - applied to each scene image as it is loaded. Ops must not change
// image dimensions.
type ImageOp func(img *raster.Image) (*raster.Image, error)

// Collection - an ordered set of scenes plus the ops to apply when loading
// them. Filter and op methods return new collections.
type Collection struct {
	catalog Catalog
	scenes  []Scene
	ops     []ImageOp
}

func NewCollection(cat Catalog, scenes []Scene) Collection {
	return Collection{catalog: cat, scenes: scenes}
}

// FromCatalog - collection of every scene the catalog returns for q
func FromCatalog(ctx context.Context, cat Catalog, q Query) (Collection, error) {
	scenes, err := cat.Find(ctx, q)
	if err != nil {
		return Collection{}, err
	}
	return NewCollection(cat, scenes), nil
}

func (c Collection) Scenes() []Scene {
	return c.scenes
}

func (c Collection) Size() int {
	return len(c.scenes)
}

func (c Collection) filter(keep func(s Scene) bool) Collection {
	result := Collection{catalog: c.catalog, ops: c.ops}
	for _, s := range c.scenes {
		if keep(s) {
			result.scenes = append(result.scenes, s)
		}
	}
	return result
}

// FilterDate - scenes acquired in [from, to)
func (c Collection) FilterDate(from time.Time, to time.Time) Collection {
	q := Query{From: from, To: to}
	return c.filter(q.matches)
}

// FilterBounds - scenes whose footprint overlaps roi
func (c Collection) FilterBounds(roi raster.Rect) Collection {
	q := Query{Bounds: &roi}
	return c.filter(q.matches)
}

// Map - appends an op run on every image when loaded
func (c Collection) Map(op ImageOp) Collection {
	ops := make([]ImageOp, len(c.ops), len(c.ops)+1)
	copy(ops, c.ops)
	return Collection{catalog: c.catalog, scenes: c.scenes, ops: append(ops, op)}
}

// Select - keeps only the bands at the given 0-based positions
func (c Collection) Select(idxs ...int) Collection {
	return c.Map(func(img *raster.Image) (*raster.Image, error) {
		return img.SelectIndices(idxs...)
	})
}

// Images - loads every scene and applies the ops, in scene order
func (c Collection) Images(ctx context.Context) ([]*raster.Image, error) {
	images := make([]*raster.Image, len(c.scenes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range c.scenes {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			img, err := c.catalog.Load(ctx, c.scenes[i])
			if err != nil {
				return err
			}

			for _, op := range c.ops {
				if img, err = op(img); err != nil {
					return fmt.Errorf("scene %v: %v", c.scenes[i].ID, err)
				}
			}

			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// Extent - union of all scene footprints
func (c Collection) Extent() raster.Rect {
	if len(c.scenes) <= 0 {
		return raster.Rect{}
	}

	minX, minY := c.scenes[0].Footprint.X, c.scenes[0].Footprint.Y
	maxX, maxY := minX+c.scenes[0].Footprint.Width, minY+c.scenes[0].Footprint.Height
	for _, s := range c.scenes[1:] {
		minX = min(minX, s.Footprint.X)
		minY = min(minY, s.Footprint.Y)
		maxX = max(maxX, s.Footprint.X+s.Footprint.Width)
		maxY = max(maxY, s.Footprint.Y+s.Footprint.Height)
	}
	return raster.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Median - per band, per grid pixel median of all valid scene values. The
// result covers the collection extent, clipped to clip if given. Pixels no
// scene has a valid value for are masked.
func (c Collection) Median(ctx context.Context, clip *raster.Rect) (*raster.Image, error) {
	if len(c.scenes) <= 0 {
		return nil, errors.Wrap(reduce.ErrInvalidInput, "collection is empty")
	}

	extent := c.Extent()
	if clip != nil {
		extent = extent.Intersect(*clip)
		if extent.Empty() {
			return nil, errors.Wrapf(reduce.ErrInvalidInput, "clip region %+v does not overlap collection extent %+v", *clip, c.Extent())
		}
	}

	images, err := c.Images(ctx)
	if err != nil {
		return nil, err
	}

	bands := images[0].Bands
	for i, img := range images {
		if !slices.Equal(img.Bands, bands) {
			return nil, errors.Wrapf(reduce.ErrInvalidInput, "scene %v bands differ from scene %v", c.scenes[i].ID, c.scenes[0].ID)
		}
		fp := c.scenes[i].Footprint
		if img.Width != fp.Width || img.Height != fp.Height {
			return nil, fmt.Errorf("scene %v image is %vx%v but footprint is %vx%v", c.scenes[i].ID, img.Width, img.Height, fp.Width, fp.Height)
		}
	}

	result, err := raster.NewImage(bands, extent.Width, extent.Height)
	if err != nil {
		return nil, err
	}
	result.CRS = images[0].CRS
	result.Scale = images[0].Scale

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for b := range bands {
		b := b
		g.Go(func() error {
			medianBand(ctx, c.scenes, images, b, extent, result.Data[b], result.Valid[b])
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

func medianBand(ctx context.Context, scenes []Scene, images []*raster.Image, band int, extent raster.Rect, data []float64, valid []bool) {
	values := make([]float64, 0, len(images))

	for y := 0; y < extent.Height; y++ {
		if ctx.Err() != nil {
			return
		}

		gy := extent.Y + y
		for x := 0; x < extent.Width; x++ {
			gx := extent.X + x

			values = values[:0]
			for i, img := range images {
				fp := scenes[i].Footprint
				if !fp.Contains(gx, gy) {
					continue
				}
				idx := (gy-fp.Y)*img.Width + (gx - fp.X)
				if img.Valid[band][idx] {
					values = append(values, img.Data[band][idx])
				}
			}

			i := y*extent.Width + x
			if len(values) <= 0 {
				data[i] = 0
				valid[i] = false
				continue
			}

			data[i] = median(values)
			valid[i] = true
		}
	}
}

// median - sorts values in place. Even counts take the mean of the middle two.
func median(values []float64) float64 {
	slices.Sort(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
