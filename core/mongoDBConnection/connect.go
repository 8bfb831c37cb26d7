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

// Lowest-level code to connect to Mongo DB, either a local instance (eg in
// Docker) or a remote one whose credentials live in AWS Secrets Manager.
package mongoDBConnection

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/pixlise/hyperspectral/core/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect - if mongoSecret is empty, connects to the local DB at
// LOCAL_MONGO_URI (or localhost) with no auth. Otherwise reads connection
// info from the named secret and connects with TLS.
func Connect(
	sess *session.Session, // Can be nil for local connection
	mongoSecret string,
	iLog logger.ILogger,
) (*mongo.Client, error) {
	if len(mongoSecret) <= 0 {
		return connectToLocalMongoDB(iLog)
	}

	info, err := getMongoConnectionInfoFromSecretCache(sess, mongoSecret)
	if err != nil {
		return nil, fmt.Errorf("Failed to read mongo secret \"%v\" info from secrets cache: %v", mongoSecret, err)
	}

	return connectToRemoteMongoDB(info, iLog)
}

// GetDatabaseName - one DB per environment
func GetDatabaseName(dbName string, envName string) string {
	return dbName + "-" + envName
}

func localMongoURI() string {
	if uri, set := os.LookupEnv("LOCAL_MONGO_URI"); set {
		return uri
	}
	return "mongodb://localhost"
}

func connectToLocalMongoDB(log logger.ILogger) (*mongo.Client, error) {
	log.Infof("Connecting to local mongo db...")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(localMongoURI()).SetMonitor(makeMongoCommandMonitor(log)).SetDirect(true))
	if err != nil {
		return nil, fmt.Errorf("Failed to create new local mongo DB connection: %v", err)
	}

	if err := ping(ctx, client); err != nil {
		return nil, err
	}

	log.Infof("Successfully connected to local mongo db!")
	return client, nil
}

func remoteMongoURI(host string) string {
	return fmt.Sprintf("mongodb://%s/", host)
}

func connectToRemoteMongoDB(info MongoConnectionInfo, log logger.ILogger) (*mongo.Client, error) {
	log.Infof("Connecting to remote mongo db: %v, user: %v", info.Host, info.Username)

	tlsConfig, err := getCustomTLSConfig("./rds-combined-ca-bundle.pem")
	if err != nil {
		return nil, fmt.Errorf("Failed getting TLS configuration: %v", err)
	}

	// Tunnelled connections come in through localhost, where the cert won't match
	if strings.Contains(info.Host, "localhost") {
		tlsConfig.InsecureSkipVerify = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx,
		options.Client().
			ApplyURI(remoteMongoURI(info.Host)).
			SetMonitor(makeMongoCommandMonitor(log)).
			SetTLSConfig(tlsConfig).
			SetRetryWrites(false).
			SetDirect(true).
			SetAuth(
				options.Credential{
					Username:    info.Username,
					Password:    info.Password,
					PasswordSet: true,
					AuthSource:  "admin",
				}))
	if err != nil {
		return nil, fmt.Errorf("Failed to create new mongo DB connection: %v", err)
	}

	if err := ping(ctx, client); err != nil {
		return nil, err
	}

	log.Infof("Successfully connected to remote mongo db!")
	return client, nil
}

func ping(ctx context.Context, client *mongo.Client) error {
	var result bson.M
	return client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&result)
}

func getCustomTLSConfig(caFile string) (*tls.Config, error) {
	tlsConfig := new(tls.Config)
	certs, err := os.ReadFile(caFile)
	if err != nil {
		return tlsConfig, err
	}

	tlsConfig.RootCAs = x509.NewCertPool()
	if ok := tlsConfig.RootCAs.AppendCertsFromPEM(certs); !ok {
		return tlsConfig, errors.New("Failed parsing pem file")
	}

	return tlsConfig, nil
}

func makeMongoCommandMonitor(log logger.ILogger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			log.Debugf("Mongo request:\n%v", evt.Command)
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			log.Debugf("Mongo success: %v in %v", evt.CommandName, evt.Duration)
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			log.Errorf("Mongo FAIL: %v: %v", evt.CommandName, evt.Failure)
		},
	}
}
