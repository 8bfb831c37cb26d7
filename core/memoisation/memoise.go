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

// Caches reduction results in mongo so repeated statistics over the same
// image and region are not recomputed
package memoisation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"

	"github.com/pixlise/hyperspectral/api/dbCollections"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pixlise/hyperspectral/core/timestamper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MemoisedReduction struct {
	Key                 string        `bson:"_id"`
	ImageID             string        `bson:"imageid"`
	Request             string        `bson:"request"`
	Result              reduce.Result `bson:"result"`
	MemoTimeUnixSec     int64         `bson:"memotimeunixsec"`
	LastReadTimeUnixSec int64         `bson:"lastreadtimeunixsec"`
	NoGC                bool          `bson:"nogc"`
}

// MemoisingBackend - wraps another backend, storing its results keyed by
// image ID and request. Images without an ID are passed straight through.
type MemoisingBackend struct {
	Backend reduce.Backend
	coll    *mongo.Collection
	ts      timestamper.ITimeStamper
	log     logger.ILogger
}

func MakeMemoisingBackend(backend reduce.Backend, db *mongo.Database, ts timestamper.ITimeStamper, log logger.ILogger) *MemoisingBackend {
	return &MemoisingBackend{
		Backend: backend,
		coll:    db.Collection(dbCollections.MemoisedReductionsName),
		ts:      ts,
		log:     log,
	}
}

func describeRequest(req reduce.Request) string {
	region := "all"
	if req.Region != nil {
		region = fmt.Sprintf("%+v", *req.Region)
	}
	return fmt.Sprintf("%v region=%v scale=%v maxPixels=%v bestEffort=%v tileScale=%v", req.Reducer, region, req.Scale, req.MaxPixels, req.BestEffort, req.TileScale)
}

// ForgetImage - deletes memoised reductions of imageID and of every image
// derived from it ("imageID|..."). Call when the image's pixels change.
func ForgetImage(ctx context.Context, db *mongo.Database, imageID string) (int64, error) {
	if len(imageID) <= 0 {
		return 0, nil
	}

	filter := bson.M{"$or": bson.A{
		bson.M{"imageid": imageID},
		bson.M{"imageid": bson.M{"$regex": "^" + regexp.QuoteMeta(imageID+"|")}},
	}}

	result, err := db.Collection(dbCollections.MemoisedReductionsName).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// MakeKey - stable key for a reduction of an image
func MakeKey(imageID string, req reduce.Request) string {
	sum := sha256.Sum256([]byte(imageID + "|" + describeRequest(req)))
	return hex.EncodeToString(sum[:])
}

func (b *MemoisingBackend) ReduceRegion(ctx context.Context, img *raster.Image, req reduce.Request) (reduce.Result, error) {
	if img == nil || len(img.ID) <= 0 {
		return b.Backend.ReduceRegion(ctx, img, req)
	}

	key := MakeKey(img.ID, req)

	item := MemoisedReduction{}
	err := b.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&item)
	if err == nil {
		b.log.Debugf("Memoised %v of %v found: %v", req.Reducer, img.ID, key)

		_, err = b.coll.UpdateByID(ctx, key, bson.D{{Key: "$set", Value: bson.D{{Key: "lastreadtimeunixsec", Value: b.ts.GetTimeNowSec()}}}})
		if err != nil {
			b.log.Errorf("Failed to update memoised item %v read time: %v", key, err)
		}
		return item.Result, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		b.log.Errorf("Failed to read memoised item %v: %v", key, err)
	}

	result, err := b.Backend.ReduceRegion(ctx, img, req)
	if err != nil {
		return result, err
	}

	now := b.ts.GetTimeNowSec()
	item = MemoisedReduction{
		Key:                 key,
		ImageID:             img.ID,
		Request:             describeRequest(req),
		Result:              result,
		MemoTimeUnixSec:     now,
		LastReadTimeUnixSec: now,
	}

	_, err = b.coll.ReplaceOne(ctx, bson.M{"_id": key}, item, options.Replace().SetUpsert(true))
	if err != nil {
		// Still have a result to return, just couldn't save it
		b.log.Errorf("Failed to memoise %v of %v: %v", req.Reducer, img.ID, err)
	}

	return result, nil
}
