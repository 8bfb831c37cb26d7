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
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/pixlise/hyperspectral/core/awsutil"
	"github.com/pixlise/hyperspectral/core/export"
	"github.com/pixlise/hyperspectral/core/fileaccess"
	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/pca"
	"github.com/pixlise/hyperspectral/core/raster"
	"github.com/pixlise/hyperspectral/core/reduce"
	"github.com/pixlise/hyperspectral/core/spectral"
)

// Runs a PCA of a scene stored as band TIFFs + manifest.json, either in a
// local directory or s3://bucket/dir, and writes the components and variance
// report to another.
//
// Example:
//   pca -in s3://scenes/pace/2024-05-01 -out ./pca-out -sensor pace -profile 10,20

type jobOptions struct {
	prefix    string
	region    *raster.Rect
	policy    reduce.Policy
	sensor    spectral.Sensor
	profile   []int
	fileIDs   []string
	outPrefix string
	workers   int
}

func main() {
	var in, out, prefix, region, sensor, profile, files, name string
	var maxPixels int64
	var strict, debug bool
	var tileScale int

	flag.StringVar(&in, "in", "", "Scene directory, local or s3://bucket/dir")
	flag.StringVar(&out, "out", "", "Output directory, local or s3://bucket/dir")
	flag.StringVar(&prefix, "prefix", pca.DefaultPrefix, "Component band name prefix")
	flag.StringVar(&region, "region", "", "Region to compute statistics over: x,y,w,h (whole scene if empty)")
	flag.StringVar(&sensor, "sensor", "", "Sensor the scene came from, needed for spectral profiles")
	flag.StringVar(&profile, "profile", "", "Pixel to export the spectral profile of: x,y")
	flag.StringVar(&files, "files", strings.Join([]string{export.FileIdVarianceJSON, export.FileIdVarianceParquet, export.FileIdComponentTIFs}, ","), "Comma separated export file IDs")
	flag.StringVar(&name, "name", "pca", "File name prefix for outputs")
	flag.Int64Var(&maxPixels, "maxpixels", reduce.DefaultPolicy.MaxPixels, "Pixel budget per reduction")
	flag.BoolVar(&strict, "strict", false, "Fail instead of subsampling if the budget is exceeded")
	flag.IntVar(&tileScale, "tilescale", reduce.DefaultPolicy.TileScale, "Higher splits reductions into more, smaller tiles")
	flag.BoolVar(&debug, "debug", false, "Debug logging")
	flag.Parse()

	if len(in) <= 0 || len(out) <= 0 {
		flag.Usage()
		os.Exit(1)
	}

	// stdout only carries the list of written files
	iLog := &logger.StdErrLogger{}
	iLog.SetLogLevel(logger.LogInfo)
	if debug {
		iLog.SetLogLevel(logger.LogDebug)
	}

	opts := jobOptions{
		prefix:    prefix,
		policy:    reduce.Policy{MaxPixels: maxPixels, BestEffort: !strict, TileScale: tileScale},
		fileIDs:   strings.Split(files, ","),
		outPrefix: name,
		workers:   runtime.NumCPU(),
	}

	var err error
	if opts.region, err = parseRegion(region); err != nil {
		log.Fatalln(err)
	}
	if len(sensor) > 0 {
		if opts.sensor, err = spectral.Lookup(sensor); err != nil {
			log.Fatalln(err)
		}
	}
	if len(profile) > 0 {
		if opts.profile, err = parseInts(profile, 2); err != nil {
			log.Fatalf("profile: %v", err)
		}
	}

	inFS, inBucket, inDir, err := openLocation(in)
	if err != nil {
		log.Fatalln(err)
	}
	outFS, outBucket, outDir, err := openLocation(out)
	if err != nil {
		log.Fatalln(err)
	}

	written, err := runPCA(context.Background(), inFS, inBucket, inDir, outFS, outBucket, outDir, opts, iLog)
	if err != nil {
		log.Fatalln(err)
	}

	for _, p := range written {
		fmt.Println(p)
	}
}

// openLocation - file access, bucket and dir for a local path or s3://bucket/dir
func openLocation(loc string) (fileaccess.FileAccess, string, string, error) {
	if !fileaccess.IsS3Path(loc) {
		return &fileaccess.FSAccess{}, loc, "", nil
	}

	bucket, dir, err := fileaccess.SplitS3Url(loc)
	if err != nil {
		return nil, "", "", err
	}

	sess, err := awsutil.GetSession()
	if err != nil {
		return nil, "", "", err
	}
	return fileaccess.MakeS3Access(awsutil.GetS3(sess)), bucket, strings.TrimSuffix(dir, "/"), nil
}

func parseInts(s string, count int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != count {
		return nil, fmt.Errorf("expected %v comma separated integers, got \"%v\"", count, s)
	}

	result := make([]int, 0, count)
	for _, p := range parts {
		var v int
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%d", &v); err != nil {
			return nil, fmt.Errorf("expected %v comma separated integers, got \"%v\"", count, s)
		}
		result = append(result, v)
	}
	return result, nil
}

func parseRegion(s string) (*raster.Rect, error) {
	if len(s) <= 0 {
		return nil, nil
	}

	v, err := parseInts(s, 4)
	if err != nil {
		return nil, fmt.Errorf("region: %v", err)
	}
	return &raster.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func runPCA(ctx context.Context, inFS fileaccess.FileAccess, inBucket string, inDir string, outFS fileaccess.FileAccess, outBucket string, outDir string, opts jobOptions, iLog logger.ILogger) ([]string, error) {
	img, err := raster.LoadImage(inFS, inBucket, inDir)
	if err != nil {
		return nil, err
	}
	iLog.Infof("Loaded %v bands, %vx%v from %v/%v", img.BandCount(), img.Width, img.Height, inBucket, inDir)

	backend := reduce.MakeLocalBackend(opts.workers, iLog)
	components, report, err := pca.ComputePCA(ctx, backend, img, opts.region, pca.Options{Prefix: opts.prefix, Policy: opts.policy, Log: iLog})
	if err != nil {
		return nil, err
	}

	for _, k := range report.Keys() {
		iLog.Infof("Component %v: %v%%", k, report.Percentages[k])
	}

	in := export.Inputs{
		Report:     report,
		Components: components,
		Source:     img,
		Sensor:     opts.sensor,
	}
	if len(opts.profile) == 2 {
		in.ProfileX, in.ProfileY = opts.profile[0], opts.profile[1]
	}

	exporter := export.Exporter{Log: iLog}
	return exporter.SaveExportFiles(outFS, outBucket, outDir, opts.outPrefix, in, opts.fileIDs)
}
