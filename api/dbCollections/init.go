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

package dbCollections

import (
	"context"
	"fmt"

	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitCollections - ensures our collections exist and have the indexes the
// catalog queries and memoisation GC rely on
func InitCollections(ctx context.Context, db *mongo.Database, iLog logger.ILogger) error {
	existingCollections, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %v", err)
	}

	for _, collName := range []string{ScenesName, MemoisedReductionsName} {
		if !utils.ItemInSlice(collName, existingCollections) {
			iLog.Infof("Mongo collection %v doesn't exist, pre-creating it...", collName)
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("failed to create collection %v: %v", collName, err)
			}
		}
	}

	_, err = db.Collection(ScenesName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "collection", Value: 1}, {Key: "timestartunixsec", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create %v index: %v", ScenesName, err)
	}

	_, err = db.Collection(MemoisedReductionsName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lastreadtimeunixsec", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create %v index: %v", MemoisedReductionsName, err)
	}

	return nil
}
