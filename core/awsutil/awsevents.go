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

package awsutil

import (
	"encoding/json"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/pkg/errors"
)

type eventType int

const (
	unknownEventType eventType = iota
	s3EventType
	snsEventType
	sqsEventType
)

type Record struct {
	EventSource    string
	EventSourceArn string
	AWSRegion      string
	S3             events.S3Entity
	SQS            events.SQSMessage
	SNS            events.SNSEntity
}

// Event - any of the event types that can start a job, flattened into records
type Event struct {
	Records []Record
}

// ObjectRef - a bucket/key pair an event refers to
type ObjectRef struct {
	Bucket string
	Key    string
}

func getEventType(data []byte) eventType {
	var temp struct {
		Records []map[string]interface{}
	}
	if err := json.Unmarshal(data, &temp); err != nil || len(temp.Records) <= 0 {
		return unknownEventType
	}

	record := temp.Records[0]

	var eventSource string
	if es, ok := record["EventSource"].(string); ok {
		eventSource = es
	} else if es, ok := record["eventSource"].(string); ok {
		eventSource = es
	}

	switch eventSource {
	case "aws:s3":
		return s3EventType
	case "aws:sns":
		return snsEventType
	case "aws:sqs":
		return sqsEventType
	}

	return unknownEventType
}

func (event *Event) mapS3EventRecords(s3Event *events.S3Event) {
	event.Records = make([]Record, 0, len(s3Event.Records))

	for _, s3Record := range s3Event.Records {
		event.Records = append(event.Records, Record{
			EventSource:    s3Record.EventSource,
			EventSourceArn: s3Record.S3.Bucket.Arn,
			AWSRegion:      s3Record.AWSRegion,
			S3:             s3Record.S3,
		})
	}
}

// SNS messages carry an S3 event as their message body when a bucket
// notification is fanned out through a topic
func (event *Event) mapSNSEventRecords(snsEvent *events.SNSEvent) error {
	event.Records = make([]Record, 0, len(snsEvent.Records))

	for _, snsRecord := range snsEvent.Records {
		topicArn, err := arn.Parse(snsRecord.SNS.TopicArn)
		if err != nil {
			return errors.Wrap(err, "Failed to parse SNS topic ARN")
		}

		rec := Record{
			EventSource:    snsRecord.EventSource,
			EventSourceArn: snsRecord.SNS.TopicArn,
			AWSRegion:      topicArn.Region,
			SNS:            snsRecord.SNS,
		}

		s3Event := &events.S3Event{}
		if err := json.Unmarshal([]byte(snsRecord.SNS.Message), s3Event); err == nil && len(s3Event.Records) > 0 {
			for _, s3Record := range s3Event.Records {
				r := rec
				r.S3 = s3Record.S3
				event.Records = append(event.Records, r)
			}
		} else {
			event.Records = append(event.Records, rec)
		}
	}

	return nil
}

func (event *Event) mapSQSEventRecords(sqsEvent *events.SQSEvent) error {
	event.Records = make([]Record, 0, len(sqsEvent.Records))

	for _, sqsRecord := range sqsEvent.Records {
		s3Event := &events.S3Event{}
		err := json.Unmarshal([]byte(sqsRecord.Body), s3Event)
		if err != nil {
			return errors.Wrap(err, "Failed to decode sqs body to an S3 event")
		}

		if len(s3Event.Records) == 0 {
			return errors.New("S3 Event Records is empty")
		}

		for _, s3Record := range s3Event.Records {
			event.Records = append(event.Records, Record{
				EventSource:    sqsRecord.EventSource,
				EventSourceArn: sqsRecord.EventSourceARN,
				AWSRegion:      sqsRecord.AWSRegion,
				SQS:            sqsRecord,
				S3:             s3Record.S3,
			})
		}
	}

	return nil
}

// UnmarshalJSON - Decode the JSON to the correct Event type
func (event *Event) UnmarshalJSON(data []byte) error {
	switch getEventType(data) {
	case s3EventType:
		s3Event := &events.S3Event{}
		if err := json.Unmarshal(data, s3Event); err != nil {
			return err
		}
		event.mapS3EventRecords(s3Event)
		return nil

	case snsEventType:
		snsEvent := &events.SNSEvent{}
		if err := json.Unmarshal(data, snsEvent); err != nil {
			return err
		}
		return event.mapSNSEventRecords(snsEvent)

	case sqsEventType:
		sqsEvent := &events.SQSEvent{}
		if err := json.Unmarshal(data, sqsEvent); err != nil {
			return err
		}
		return event.mapSQSEventRecords(sqsEvent)
	}

	return errors.New("Unrecognised event source")
}

// S3Objects - the objects referred to by records that carry an S3 entity.
// Keys arrive URL encoded (spaces as +), these are decoded.
func (event *Event) S3Objects() ([]ObjectRef, error) {
	result := []ObjectRef{}
	for _, rec := range event.Records {
		if len(rec.S3.Bucket.Name) <= 0 {
			continue
		}

		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to decode S3 key: %v", rec.S3.Object.Key)
		}
		result = append(result, ObjectRef{Bucket: rec.S3.Bucket.Name, Key: key})
	}
	return result, nil
}
