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

package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Example_makeSaveableFileName() {
	fmt.Println(MakeSaveableFileName("pace pca"))
	fmt.Println(MakeSaveableFileName("EMIT/2023-08-01"))
	fmt.Println(MakeSaveableFileName("ndvi-b111.tif"))

	// Output:
	// pace_pca
	// EMIT_2023-08-01
	// ndvi-b111.tif
}

func Example_getSortedMapKeys() {
	fmt.Println(GetSortedMapKeys(map[string]int{"03": 1, "01": 2, "02": 3}))
	fmt.Println(GetSortedMapKeys(map[int]bool{}))

	// Output:
	// [01 02 03]
	// []
}

func Example_clamp() {
	fmt.Println(Clamp(5, 0, 3), Clamp(-1.5, -1.0, 1.0), Clamp(2, 0, 3))

	// Output:
	// 3 -1 2
}

func Example_makeRange() {
	fmt.Println(MakeRange(0, 4))
	fmt.Println(MakeRange(3, 2))
	fmt.Println(ItemInSlice(3, MakeRange(0, 4)))

	// Output:
	// [0 1 2 3 4]
	// []
	// true
}

func Example_randString() {
	s := RandStringBytesMaskImpr(12)
	fmt.Println(len(s), strings.Trim(s, RandomStringChars) == "")

	// Output:
	// 12 true
}

func Test_ZipDirectory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("bee"), 0644)
	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("ay"), 0644)
	os.Mkdir(filepath.Join(dir, "sub"), 0755)

	data, err := ZipDirectory(dir)
	if err != nil {
		t.Fatal(err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	names := []string{}
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	if fmt.Sprintf("%v", names) != "[a.txt b.txt]" {
		t.Errorf("unexpected zip contents: %v", names)
	}

	if _, err := ZipDirectory(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing dir")
	}
}
