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

package endpoints

import (
	"net/http"

	"github.com/pixlise/hyperspectral/api/handlers"
	apiRouter "github.com/pixlise/hyperspectral/api/router"
	"github.com/pixlise/hyperspectral/core/bandmath"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const indexIdentifier = "index"

type indexInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Stats of an index image over a region, values are x IndexScale
type indexStats struct {
	Index       string    `json:"index"`
	Bands       []string  `json:"bands"`
	Scale       float64   `json:"scale"`
	Mean        []float64 `json:"mean"`
	Min         []float64 `json:"min"`
	Max         []float64 `json:"max"`
	PixelCount  int64     `json:"pixelCount"`
	Approximate bool      `json:"approximate"`
}

func registerIndexHandler(router *apiRouter.ApiObjectRouter) {
	router.AddJSONHandler(handlers.MakeEndpointPath("indices"), "GET", indexList)
	router.AddJSONHandler(handlers.MakeEndpointPath("scenes", sceneIdentifier)+"/index/{"+indexIdentifier+"}", "GET", indexGet)
}

func indexList(params handlers.ApiHandlerParams) (interface{}, error) {
	result := []indexInfo{}
	for _, name := range bandmath.IndexNames() {
		idx, _ := bandmath.Lookup(name)
		result = append(result, indexInfo{Name: idx.Name, Description: idx.Description})
	}
	return result, nil
}

func indexGet(params handlers.ApiHandlerParams) (interface{}, error) {
	idx, err := bandmath.Lookup(params.PathParams[indexIdentifier])
	if err != nil {
		return nil, errorwithstatus.MakeStatusError(http.StatusNotFound, err)
	}

	region, err := parseRegion(params.PathParams)
	if err != nil {
		return nil, err
	}

	ctx := params.Request.Context()
	id := params.PathParams[sceneIdentifier]

	_, img, err := loadSceneImage(ctx, params.Svcs, id)
	if err != nil {
		return nil, err
	}

	indexImg, err := idx.Compute(img)
	if err != nil {
		return nil, err
	}
	indexImg = indexImg.WithID(id + "|index|" + idx.Name)

	policy := params.Svcs.Config.ReductionPolicy()
	reducers := []reduce.Reducer{reduce.Mean, reduce.Min, reduce.Max}
	results := make([]reduce.Result, len(reducers))

	group, groupCtx := errgroup.WithContext(ctx)
	for c, reducer := range reducers {
		c, reducer := c, reducer
		group.Go(func() error {
			req := policy.MakeRequest(reducer, region)
			req.Scale = indexImg.Scale
			var err error
			results[c], err = params.Svcs.Backend.ReduceRegion(groupCtx, indexImg, req)
			return errors.Wrapf(err, "failed to compute %v of %v", reducer, idx.Name)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return indexStats{
		Index:       idx.Name,
		Bands:       indexImg.Bands,
		Scale:       bandmath.IndexScale,
		Mean:        results[0].Vector,
		Min:         results[1].Vector,
		Max:         results[2].Vector,
		PixelCount:  results[0].PixelCount,
		Approximate: results[0].Approximate || results[1].Approximate || results[2].Approximate,
	}, nil
}
