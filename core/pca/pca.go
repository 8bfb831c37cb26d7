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

// Principal component analysis of multi-band images. Components are the
// eigenvectors of the band covariance over a region, ordered by decreasing
// variance, with each output band scaled to unit standard deviation.
package pca

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const DefaultPrefix = "pc"

type Options struct {
	// Output band name prefix, "pc" if empty
	Prefix string
	// Budget for the mean and covariance reductions, reduce.DefaultPolicy if zero
	Policy reduce.Policy
	Log    logger.ILogger
}

func (o Options) prefix() string {
	if len(o.Prefix) > 0 {
		return o.Prefix
	}
	return DefaultPrefix
}

func (o Options) policy() reduce.Policy {
	if o.Policy == (reduce.Policy{}) {
		return reduce.DefaultPolicy
	}
	return o.Policy
}

// BandNames - prefix1..prefixP
func BandNames(prefix string, count int) []string {
	result := make([]string, count)
	for c := range result {
		result[c] = fmt.Sprintf("%v%v", prefix, c+1)
	}
	return result
}

// ComputePCA - principal components of img over region (nil for the whole
// image). Masked pixels are filled with 0 for the statistics, and remain
// masked in every output band. Returns an image with one band per input band
// named pc1..pcP in order of decreasing variance, and the variance report,
// which is also set as properties on the image.
func ComputePCA(ctx context.Context, backend reduce.Backend, img *raster.Image, region *raster.Rect, opts Options) (*raster.Image, VarianceReport, error) {
	if err := reduce.CheckImage(img); err != nil {
		return nil, VarianceReport{}, err
	}

	r, err := reduce.ResolveRegion(img, region)
	if err != nil {
		return nil, VarianceReport{}, err
	}

	if img.ValidPixelCount(r) <= 0 {
		return nil, VarianceReport{}, errors.Wrapf(reduce.ErrInvalidInput, "region %+v of image %v has no valid pixels", r, img.ID)
	}

	policy := opts.policy()
	image := img.Unmask(0).WithID(derivedID(img.ID, "unmasked"))

	meanReq := policy.MakeRequest(reduce.Mean, &r)
	meanReq.Scale = img.Scale
	means, err := backend.ReduceRegion(ctx, image, meanReq)
	if err != nil {
		return nil, VarianceReport{}, errors.Wrap(err, "failed to compute band means")
	}

	centered, err := image.SubtractConstants(means.Vector)
	if err != nil {
		return nil, VarianceReport{}, err
	}
	centered = centered.WithID(derivedID(image.ID, "centred"))

	covReq := policy.MakeRequest(reduce.Covariance, &r)
	covReq.Scale = img.Scale
	covar, err := backend.ReduceRegion(ctx, centered, covReq)
	if err != nil {
		return nil, VarianceReport{}, errors.Wrap(err, "failed to compute band covariance")
	}

	eigen, err := Eigendecompose(covar.Matrix)
	if err != nil {
		return nil, VarianceReport{}, err
	}

	report := makeVarianceReport(eigen.Values)
	report.PixelCount = covar.PixelCount
	report.Approximate = means.Approximate || covar.Approximate
	if covar.PixelCount == 1 {
		report.Degenerate = true
		report.Diagnostics = append(report.Diagnostics, "covariance from a single pixel")
	}

	if opts.Log != nil {
		if report.Approximate {
			opts.Log.Infof("PCA of %v used a subsample of %v pixels", img.ID, report.PixelCount)
		}
		for _, d := range report.Diagnostics {
			opts.Log.Infof("PCA of %v is degenerate: %v", img.ID, d)
		}
	}

	data, err := rotate(ctx, centered, eigen)
	if err != nil {
		return nil, VarianceReport{}, err
	}

	out, err := raster.FromBandData(BandNames(opts.prefix(), len(eigen.Values)), img.Width, img.Height, data)
	if err != nil {
		return nil, VarianceReport{}, err
	}
	out.CRS = img.CRS
	out.Scale = img.Scale

	out, err = out.UpdateMask(img.Mask())
	if err != nil {
		return nil, VarianceReport{}, err
	}

	out = out.WithProperties(img.Properties).WithProperties(report.Percentages)
	out.ID = derivedID(img.ID, opts.prefix())
	return out, report, nil
}

// derivedID - identity of an image computed from another, so cached
// reductions of intermediate images can be found again. Images without an ID
// are never cached, neither are their derivatives.
func derivedID(id string, step string) string {
	if len(id) <= 0 {
		return ""
	}
	return id + "|" + step
}

// rotate - projects every pixel onto the eigenvectors and divides by the
// component standard deviation. Components with zero variance come out as 0.
func rotate(ctx context.Context, centered *raster.Image, eigen Eigen) ([][]float64, error) {
	p := len(eigen.Values)
	n := centered.PixelCount()
	tol := zeroTolerance(eigen.Values)

	scale := make([]float64, p)
	for k, v := range eigen.Values {
		if sd := math.Sqrt(math.Abs(v)); math.Abs(v) > tol && sd > 0 {
			scale[k] = 1 / sd
		}
	}

	data := make([][]float64, p)
	for k := range data {
		data[k] = make([]float64, n)
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := max(1, (n+workers-1)/workers)

	group, groupCtx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				for k := 0; k < p; k++ {
					if scale[k] == 0 {
						continue
					}
					sum := 0.0
					vec := eigen.Vectors[k]
					for j := 0; j < p; j++ {
						sum += vec[j] * centered.Data[j][i]
					}
					data[k][i] = sum * scale[k]
				}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// LogVariance - runs PCA and logs the variance captured by each component
func LogVariance(ctx context.Context, backend reduce.Backend, img *raster.Image, log logger.ILogger) (VarianceReport, error) {
	_, report, err := ComputePCA(ctx, backend, img, nil, Options{Log: log})
	if err != nil {
		return report, err
	}

	log.Infof("Variance of Principal Components for %v:", img.ID)
	for _, k := range report.Keys() {
		log.Infof("  %v: %v%%", k, report.Percentages[k])
	}
	return report, nil
}
