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

package memoisation

import (
	"context"
	"time"

	"github.com/pixlise/hyperspectral/api/dbCollections"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/timestamper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunGarbageCollector - deletes memoised items not read for oldestAllowedSec,
// every intervalSec until ctx is done
func RunGarbageCollector(ctx context.Context, intervalSec uint32, oldestAllowedSec uint32, mongoDB *mongo.Database, ts timestamper.ITimeStamper, log logger.ILogger) {
	ticker := time.NewTicker(time.Second * time.Duration(intervalSec))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collectGarbage(ctx, mongoDB, oldestAllowedSec, ts, log)
		}
	}
}

func collectGarbage(ctx context.Context, mongoDB *mongo.Database, oldestAllowedSec uint32, ts timestamper.ITimeStamper, log logger.ILogger) int64 {
	log.Infof("Memoisation GC starting...")

	oldestAllowedUnixSec := ts.GetTimeNowSec() - int64(oldestAllowedSec)

	opts := options.Delete()
	filter := bson.M{"lastreadtimeunixsec": bson.M{"$lt": oldestAllowedUnixSec}, "nogc": false}
	coll := mongoDB.Collection(dbCollections.MemoisedReductionsName)

	delResult, err := coll.DeleteMany(ctx, filter, opts)
	if err != nil {
		log.Errorf("Memoisation GC delete error: %v", err)
		return 0
	}

	log.Infof("Memoisation GC deleted %v items", delResult.DeletedCount)
	return delResult.DeletedCount
}
