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
	"fmt"

	"github.com/pixlise/hyperspectral/api/dbCollections"
	"github.com/pixlise/hyperspectral/core/errorwithstatus"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/memoisation"
	"github.com/pixlise/hyperspectral/core/raster"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalog - scene documents in mongo, rasters in a FileAccess
type MongoCatalog struct {
	db   *mongo.Database
	coll *mongo.Collection
	fs   fileaccess.FileAccess
	log  logger.ILogger
}

func MakeMongoCatalog(db *mongo.Database, fs fileaccess.FileAccess, log logger.ILogger) *MongoCatalog {
	return &MongoCatalog{
		db:   db,
		coll: db.Collection(dbCollections.ScenesName),
		fs:   fs,
		log:  log,
	}
}

func makeSceneFilter(q Query) bson.D {
	filter := bson.D{}
	if len(q.Collection) > 0 {
		filter = append(filter, bson.E{Key: "collection", Value: q.Collection})
	}

	timeRange := bson.D{}
	if !q.From.IsZero() {
		timeRange = append(timeRange, bson.E{Key: "$gte", Value: q.From.Unix()})
	}
	if !q.To.IsZero() {
		timeRange = append(timeRange, bson.E{Key: "$lt", Value: q.To.Unix()})
	}
	if len(timeRange) > 0 {
		filter = append(filter, bson.E{Key: "timestartunixsec", Value: timeRange})
	}
	return filter
}

func (c *MongoCatalog) Find(ctx context.Context, q Query) ([]Scene, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestartunixsec", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := c.coll.Find(ctx, makeSceneFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenes: %v", err)
	}

	found := []Scene{}
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to read scenes: %v", err)
	}

	// Footprint overlap is checked here rather than in the query
	result := []Scene{}
	for _, s := range found {
		if q.matches(s) {
			result = append(result, s)
		}
	}

	c.log.Debugf("Scene query %+v matched %v of %v scenes", q, len(result), len(found))
	return result, nil
}

func (c *MongoCatalog) Get(ctx context.Context, id string) (Scene, error) {
	scene := Scene{}
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&scene)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return scene, errorwithstatus.MakeNotFoundError(id)
		}
		return scene, fmt.Errorf("failed to read scene %v: %v", id, err)
	}
	return scene, nil
}

func (c *MongoCatalog) Put(ctx context.Context, scene Scene) error {
	if len(scene.ID) <= 0 {
		return errors.New("scene has no ID")
	}

	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": scene.ID}, scene, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write scene %v: %v", scene.ID, err)
	}

	// A replaced scene may have new pixels
	deleted, err := memoisation.ForgetImage(ctx, c.db, scene.ID)
	if err != nil {
		return fmt.Errorf("scene %v written but memoised reductions not cleared: %v", scene.ID, err)
	}
	if deleted > 0 {
		c.log.Infof("Scene %v replaced, forgot %v memoised reductions", scene.ID, deleted)
	}
	return nil
}

func (c *MongoCatalog) Load(ctx context.Context, scene Scene) (*raster.Image, error) {
	c.log.Infof("Loading scene %v from %v/%v", scene.ID, scene.Bucket, scene.Dir)
	return loadScene(c.fs, scene)
}
