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

package main

import (
	"context"
	"fmt"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pixlise/hyperspectral/core/awsutil"
	"github.com/pixlise/hyperspectral/core/export"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/pca"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pixlise/hyperspectral/core/utils"
)

// The PCA job lambda
// Triggered (via S3 notification directly, or SNS/SQS) when a scene's
// manifest.json is uploaded. Loads the scene's bands, runs a PCA over the
// whole scene and writes the variance report and component TIFFs to
// EXPORT_BUCKET under pca/<scene dir>.

var exportFileIDs = []string{export.FileIdVarianceJSON, export.FileIdVarianceParquet, export.FileIdComponentTIFs}

type jobConfig struct {
	exportBucket string
	policy       reduce.Policy
}

func getJobConfig() (jobConfig, error) {
	cfg := jobConfig{
		exportBucket: os.Getenv("EXPORT_BUCKET"),
		policy:       reduce.DefaultPolicy,
	}

	if len(cfg.exportBucket) <= 0 {
		return cfg, fmt.Errorf("EXPORT_BUCKET not set")
	}

	if maxPixels := os.Getenv("MAX_PIXELS"); len(maxPixels) > 0 {
		v, err := strconv.ParseInt(maxPixels, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("MAX_PIXELS: %v", err)
		}
		cfg.policy.MaxPixels = v
	}
	return cfg, nil
}

// processManifest - PCA of the scene whose manifest was uploaded, returns files written
func processManifest(ctx context.Context, fs fileaccess.FileAccess, obj awsutil.ObjectRef, cfg jobConfig, backend reduce.Backend, log logger.ILogger) ([]string, error) {
	sceneDir := path.Dir(obj.Key)
	if sceneDir == "." {
		sceneDir = ""
	}

	img, err := raster.LoadImage(fs, obj.Bucket, sceneDir)
	if err != nil {
		return nil, err
	}
	img = img.WithID(obj.Bucket + "/" + sceneDir)

	// Retries get a new one
	jobID := utils.RandStringBytesMaskImpr(8)
	log.Infof("Job %v: running PCA of %v: %v bands, %vx%v", jobID, img.ID, img.BandCount(), img.Width, img.Height)

	components, report, err := pca.ComputePCA(ctx, backend, img, nil, pca.Options{Policy: cfg.policy, Log: log})
	if err != nil {
		return nil, err
	}

	log.Infof("Job %v: %v components, %v pixels, approximate: %v", jobID, components.BandCount(), report.PixelCount, report.Approximate)

	outDir := path.Join("pca", sceneDir)
	exporter := export.Exporter{Log: log}
	return exporter.SaveExportFiles(fs, cfg.exportBucket, outDir, path.Base(sceneDir), export.Inputs{Report: report, Components: components}, exportFileIDs)
}

func handleEvent(ctx context.Context, fs fileaccess.FileAccess, event awsutil.Event, cfg jobConfig, log logger.ILogger) (string, error) {
	objects, err := event.S3Objects()
	if err != nil {
		return "", err
	}

	backend := reduce.InstrumentedBackend{Backend: reduce.MakeLocalBackend(runtime.NumCPU(), log)}

	processed := 0
	for _, obj := range objects {
		if path.Base(obj.Key) != raster.ManifestFileName {
			log.Infof("Ignoring %v/%v, not a scene manifest", obj.Bucket, obj.Key)
			continue
		}

		written, err := processManifest(ctx, fs, obj, cfg, backend, log)
		if err != nil {
			log.Errorf("PCA of %v/%v failed: %v", obj.Bucket, obj.Key, err)
			return "", err
		}

		log.Infof("Wrote: %v", strings.Join(written, ", "))
		processed++
	}

	return fmt.Sprintf("Processed %v scene(s)", processed), nil
}

func HandleRequest(ctx context.Context, event awsutil.Event) (string, error) {
	// We write to stdout so it gets to cloudwatch logs via lambda magic
	iLog := &logger.StdOutLogger{}
	iLog.SetLogLevel(logger.LogInfo)

	cfg, err := getJobConfig()
	if err != nil {
		return "", err
	}

	sess, err := awsutil.GetSession()
	if err != nil {
		return "", err
	}

	return handleEvent(ctx, fileaccess.MakeS3Access(awsutil.GetS3(sess)), event, cfg, iLog)
}

func main() {
	lambda.Start(HandleRequest)
}
