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

package services

import (
	"context"
	"log"
	"runtime"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/getsentry/sentry-go"
	"github.com/pixlise/hyperspectral/api/config"
	"github.com/pixlise/hyperspectral/api/dbCollections"
	"github.com/pixlise/hyperspectral/core/awsutil"
	"github.com/pixlise/hyperspectral/core/catalog"
	"github.com/pixlise/hyperspectral/core/export"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/memoisation"
	"github.com/pixlise/hyperspectral/core/mongoDBConnection"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pixlise/hyperspectral/core/timestamper"
	"go.mongodb.org/mongo-driver/mongo"
)

// NOTE: these 2 vars are set during compilation (see Makefile)
var ApiVersion string
var GitHash string

// This defines some generic interfaces that are used by a lot of the API code. Instead
// of using a bunch of global variables we pass around this services object and other
// code has access to a logger, the scene catalog etc.
// This comes in very useful when writing unit tests, since we can mock these interfaces

// ExportZipper - Interface for creating an export zip file
type ExportZipper interface {
	MakeExportFilesZip(outfileNamePrefix string, in export.Inputs, fileIDs []string) ([]byte, error)
}

// APIServices contains any services that HTTP handlers would want to use, like logging/config reading
type APIServices struct {
	// Configuration read in on startup
	Config config.APIConfig

	// Default logger
	Log logger.ILogger

	// Anything accessing scene rasters should use this
	FS fileaccess.FileAccess

	// Where scenes are looked up
	Catalog catalog.Catalog

	// All reductions (means, covariances, min/max) go through this
	Backend reduce.Backend

	// Zip File Generator
	Exporter ExportZipper

	// Timestamp retriever - so can be mocked for unit tests
	TimeStamper timestamper.ITimeStamper

	// Our mongo db connection, nil when running tests
	MongoDB *mongo.Database
}

// MakeBackend - in-process reductions with metrics, memoised in mongo if we have a DB
func MakeBackend(cfg config.APIConfig, db *mongo.Database, ts timestamper.ITimeStamper, iLog logger.ILogger) reduce.Backend {
	workers := int(cfg.ReductionWorkers)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var backend reduce.Backend = reduce.InstrumentedBackend{Backend: reduce.MakeLocalBackend(workers, iLog)}
	if db != nil {
		backend = memoisation.MakeMemoisingBackend(backend, db, ts, iLog)
	}
	return backend
}

// MakeFileAccess - local directory if configured, otherwise S3
func MakeFileAccess(cfg config.APIConfig, sess *session.Session) fileaccess.FileAccess {
	if len(cfg.LocalDataRoot) > 0 {
		return &fileaccess.FSAccess{}
	}
	return fileaccess.MakeS3Access(awsutil.GetS3(sess))
}

// InitAPIServices sets up a new APIServices instance, with the standard exporter if none is given
func InitAPIServices(cfg config.APIConfig, exporter ExportZipper) APIServices {
	ourLogger := &logger.StdOutLogger{}
	ourLogger.SetLogLevel(cfg.LogLevel)

	// Get a session for the bucket region
	sess, err := awsutil.GetSession()
	if err != nil {
		log.Fatalf("Failed to create AWS session. Error: %v", err)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryEndpoint,
		Environment: cfg.EnvironmentName,
		Release:     ApiVersion,
	}); err != nil {
		ourLogger.Errorf("Sentry initialization failed: %v", err)
	}

	mongoClient, err := mongoDBConnection.Connect(sess, cfg.MongoSecret, ourLogger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db := mongoClient.Database(mongoDBConnection.GetDatabaseName(cfg.MongoDatabase, cfg.EnvironmentName))
	if err := dbCollections.InitCollections(context.Background(), db, ourLogger); err != nil {
		log.Fatalf("%v", err)
	}

	fs := MakeFileAccess(cfg, sess)
	ts := &timestamper.UnixTimeNowStamper{}

	if exporter == nil {
		exporter = &export.Exporter{Log: ourLogger}
	}

	return APIServices{
		Config:      cfg,
		Log:         ourLogger,
		FS:          fs,
		Catalog:     catalog.MakeMongoCatalog(db, fs, ourLogger),
		Backend:     MakeBackend(cfg, db, ts, ourLogger),
		Exporter:    exporter,
		TimeStamper: ts,
		MongoDB:     db,
	}
}
