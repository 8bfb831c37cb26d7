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

// API configuration as read from strings/JSON and some constants defined here also
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/pixlise/hyperspectral/core/reduce"
)

// Env vars named this plus the field name override config JSON values
const EnvOverridePrefix = "HYPERSPEC_CONFIG_"

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Configuration for app

// APIConfig combines env vars and config JSON values
type APIConfig struct {
	EnvironmentName string

	LogLevel logger.LogLevel

	ListenAddress string

	// Scene rasters. If LocalDataRoot is set it is used instead of the S3 bucket
	DataBucket    string
	LocalDataRoot string

	// Where job outputs (PCA bands, reports) are written
	ExportBucket string

	// Mongo Connection, local mongo is used if no secret is set
	MongoSecret   string
	MongoDatabase string

	SentryEndpoint string

	// Reduction budget applied to every statistic computed
	MaxPixels         int64
	StrictPixelBudget bool // Fail reductions over budget instead of subsampling
	TileScale         int32
	ReductionWorkers  int32

	MemoisationMaxAgeSec     uint32
	MemoisationGCIntervalSec uint32
}

// ReductionPolicy - the budget every reduction made by the API runs under
func (c APIConfig) ReductionPolicy() reduce.Policy {
	return reduce.Policy{
		MaxPixels:  c.MaxPixels,
		BestEffort: !c.StrictPixelBudget,
		TileScale:  int(c.TileScale),
	}
}

// ApplyDefaults - fills in anything not configured
func (c *APIConfig) ApplyDefaults() {
	if len(c.EnvironmentName) <= 0 {
		c.EnvironmentName = "local"
	}
	if len(c.ListenAddress) <= 0 {
		c.ListenAddress = ":8080"
	}
	if len(c.MongoDatabase) <= 0 {
		c.MongoDatabase = "hyperspec"
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = reduce.DefaultPolicy.MaxPixels
	}
	if c.TileScale <= 0 {
		c.TileScale = int32(reduce.DefaultPolicy.TileScale)
	}
	if c.MemoisationMaxAgeSec <= 0 {
		c.MemoisationMaxAgeSec = 7 * 24 * 60 * 60
	}
	if c.MemoisationGCIntervalSec <= 0 {
		c.MemoisationGCIntervalSec = 60 * 60
	}
}

func NewConfigFromFile(configFilePath string) (APIConfig, error) {
	var cfg APIConfig

	fmt.Printf("Loading custom config from: %s\n", configFilePath)
	customConfig, err := os.ReadFile(configFilePath)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file at %s", configFilePath)
	}
	return buildConfig(customConfig)
}

func buildConfig(configJson []byte) (APIConfig, error) {
	var cfg APIConfig

	err := json.Unmarshal(configJson, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse custom config: %v", err)
	}

	// Override Config with any values explicitly set in Env Vars (HYPERSPEC_CONFIG_*)
	reflection := reflect.ValueOf(&cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		envName := EnvOverridePrefix + fieldName
		if val, present := os.LookupEnv(envName); present {
			switch field.Kind() {
			case reflect.String:
				field.SetString(val)
			case reflect.Slice:
				if field.Type().Elem().Kind() == reflect.String {
					field.Set(reflect.ValueOf(strings.Split(val, ",")))
				}
			case reflect.Int, reflect.Int32, reflect.Int64:
				i, err := strconv.ParseInt(val, 10, 64)
				if err != nil {
					fmt.Printf("Could not cast value %s=%s to Int\n", envName, val)
					continue
				}
				field.SetInt(i)
			case reflect.Uint32:
				i, err := strconv.ParseUint(val, 10, 32)
				if err != nil {
					fmt.Printf("Could not cast value %s=%s to Uint\n", envName, val)
					continue
				}
				field.SetUint(i)
			case reflect.Bool:
				b, err := strconv.ParseBool(val)
				if err != nil {
					fmt.Printf("Could not cast value %s=%s to Bool\n", envName, val)
					continue
				}
				field.SetBool(b)
			}
		}
	}
	return cfg, nil
}

// Init config, loads config params
func Init() (APIConfig, error) {
	configFilePath := flag.String("customConfigPath", "", "Path to the json file holding a set of custom config for the API")
	flag.Parse()

	var cfg APIConfig
	var err error

	if configFilePath != nil && *configFilePath != "" {
		cfg, err = NewConfigFromFile(*configFilePath)
	} else {
		err = errors.New("no configuration provided")
	}
	if err != nil {
		return cfg, err
	}

	cfg.ApplyDefaults()
	return cfg, nil
}
