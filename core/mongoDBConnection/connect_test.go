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

package mongoDBConnection

import (
	"fmt"
	"os"
)

func Example_getDatabaseName() {
	fmt.Println(GetDatabaseName("hyperspec", "prod"))

	// Output:
	// hyperspec-prod
}

func Example_parseConnectionInfo() {
	info, err := parseConnectionInfo("db-secret", `{"host": "docdb.cluster:27017", "username": "admin", "password": "pw", "port": "27017"}`)
	fmt.Println(err, info.Host, info.Username, info.Port)
	fmt.Println(remoteMongoURI(info.Host))

	_, err = parseConnectionInfo("db-secret", `not json`)
	fmt.Println(err)

	_, err = parseConnectionInfo("db-secret", `{"username": "admin"}`)
	fmt.Println(err)

	// Output:
	// <nil> docdb.cluster:27017 admin 27017
	// mongodb://docdb.cluster:27017/
	// failed to parse secret: db-secret
	// secret db-secret has no host
}

func Example_localMongoURI() {
	os.Unsetenv("LOCAL_MONGO_URI")
	fmt.Println(localMongoURI())

	os.Setenv("LOCAL_MONGO_URI", "mongodb://mongo:27888")
	fmt.Println(localMongoURI())
	os.Unsetenv("LOCAL_MONGO_URI")

	// Output:
	// mongodb://localhost
	// mongodb://mongo:27888
}

func Example_getCustomTLSConfig() {
	_, err := getCustomTLSConfig("./no-such-bundle.pem")
	fmt.Println(err != nil)

	// Output:
	// true
}
