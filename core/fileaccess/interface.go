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

// Storage abstraction for scene rasters, manifests and job outputs. Code works
// against FileAccess so the same pipeline runs on a local directory or an S3
// bucket. The "bucket" parameter is the root directory for local storage.
package fileaccess

import "strings"

type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)
	ObjectExists(bucket string, path string) (bool, error)

	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	ReadJSON(bucket string, path string, itemsPtr interface{}, emptyIfNotFound bool) error
	WriteJSON(bucket string, path string, itemsPtr interface{}) error

	DeleteObject(bucket string, path string) error

	IsNotFoundError(err error) bool
}

// MakeValidObjectName - strips characters that cause trouble in S3 keys and file paths
func MakeValidObjectName(name string) string {
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "$", "")
	name = strings.ReplaceAll(name, "#", "")
	name = strings.ReplaceAll(name, "!", "")
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, "\"", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")

	return name
}

// Is this string a valid name to use as an object name?
func IsValidObjectName(name string) bool {
	if len(name) <= 0 {
		return false
	}

	return !strings.ContainsAny(name, "\"")
}

// IsS3Path - true if the root looks like an S3 url rather than a local directory
func IsS3Path(root string) bool {
	return strings.HasPrefix(root, "s3://")
}
