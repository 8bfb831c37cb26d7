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

package fileaccess

import (
	"fmt"
	"os"
)

type testManifest struct {
	Name  string `json:"name"`
	Bands int    `json:"bands"`
}

func runTest(fs FileAccess, bucket string) {
	fmt.Printf("JSON: %v\n", fs.WriteJSON(bucket, "scenes/manifest.json", testManifest{Name: "EMIT_L2A", Bands: 285}))

	exists, err := fs.ObjectExists(bucket, "scenes/band.tif")
	fmt.Printf("Exists1: %v|%v\n", exists, err)

	fmt.Printf("Binary: %v\n", fs.WriteObject(bucket, "scenes/band.tif", []byte{73, 73, 42, 0}))
	fmt.Printf("Binary2: %v\n", fs.WriteObject(bucket, "scenes/sub/other.tif", []byte{1, 2}))

	exists, err = fs.ObjectExists(bucket, "scenes/band.tif")
	fmt.Printf("Exists2: %v|%v\n", exists, err)

	var contents testManifest
	err = fs.ReadJSON(bucket, "scenes/manifest.json", &contents, false)
	fmt.Printf("Read JSON: %v, %v\n", err, contents)

	data, err := fs.ReadObject(bucket, "scenes/band.tif")
	fmt.Printf("Read Binary: %v, %v\n", err, data)

	_, err = fs.ReadObject(bucket, "scenes/missing.tif")
	fmt.Printf("Read missing, got not found error: %v\n", fs.IsNotFoundError(err))

	contents = testManifest{}
	err = fs.ReadJSON(bucket, "scenes/missing.json", &contents, true)
	fmt.Printf("Read missing JSON allowed: %v, %v\n", err, contents)

	err = fs.ReadJSON(bucket, "scenes/band.tif", &contents, false)
	fmt.Printf("Not a \"not found\" error: %v\n", err != nil && !fs.IsNotFoundError(err))

	listing, err := fs.ListObjects(bucket, "scenes/")
	fmt.Printf("Listing: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "scenes/sub/oth")
	fmt.Printf("Listing with prefix: %v, %v\n", err, listing)

	listing, err = fs.ListObjects(bucket, "scenes/nothere/x")
	fmt.Printf("Listing bad path: %v, %v\n", err, listing)

	fmt.Printf("Delete: %v\n", fs.DeleteObject(bucket, "scenes/band.tif"))

	listing, err = fs.ListObjects(bucket, "scenes/")
	fmt.Printf("Listing2: %v, %v\n", err, listing)
}

func Example_localFileSystem() {
	fmt.Printf("Setup: %v\n", os.RemoveAll("./test-output/"))

	runTest(&FSAccess{}, "./test-output")

	fmt.Printf("Cleanup: %v\n", os.RemoveAll("./test-output/"))

	// Output:
	// Setup: <nil>
	// JSON: <nil>
	// Exists1: false|<nil>
	// Binary: <nil>
	// Binary2: <nil>
	// Exists2: true|<nil>
	// Read JSON: <nil>, {EMIT_L2A 285}
	// Read Binary: <nil>, [73 73 42 0]
	// Read missing, got not found error: true
	// Read missing JSON allowed: <nil>, { 0}
	// Not a "not found" error: true
	// Listing: <nil>, [scenes/band.tif scenes/manifest.json scenes/sub/other.tif]
	// Listing with prefix: <nil>, [scenes/sub/other.tif]
	// Listing bad path: <nil>, []
	// Delete: <nil>
	// Listing2: <nil>, [scenes/manifest.json scenes/sub/other.tif]
	// Cleanup: <nil>
}

func Example_memoryAccess() {
	runTest(MakeMemoryAccess(), "bucket")

	// Output:
	// JSON: <nil>
	// Exists1: false|<nil>
	// Binary: <nil>
	// Binary2: <nil>
	// Exists2: true|<nil>
	// Read JSON: <nil>, {EMIT_L2A 285}
	// Read Binary: <nil>, [73 73 42 0]
	// Read missing, got not found error: true
	// Read missing JSON allowed: <nil>, { 0}
	// Not a "not found" error: true
	// Listing: <nil>, [scenes/band.tif scenes/manifest.json scenes/sub/other.tif]
	// Listing with prefix: <nil>, [scenes/sub/other.tif]
	// Listing bad path: <nil>, []
	// Delete: <nil>
	// Listing2: <nil>, [scenes/manifest.json scenes/sub/other.tif]
}

func Example_makeValidObjectName() {
	fmt.Println(MakeValidObjectName("my scene!"))
	fmt.Println(MakeValidObjectName("emit/2023/scene.tif"))
	fmt.Println(MakeValidObjectName("A!B#C$D/E\\F"))

	// Output:
	// my scene
	// emit_2023_scene.tif
	// ABCD_E_F
}

func Example_isValidObjectName() {
	fmt.Println(IsValidObjectName("name"))
	fmt.Println(IsValidObjectName(""))
	fmt.Println(IsValidObjectName("Name \"Quote"))
	fmt.Println(IsS3Path("s3://bucket/path"), IsS3Path("./local"))

	// Output:
	// true
	// false
	// false
	// true false
}
