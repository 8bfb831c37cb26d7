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
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Wrong input for "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// MockS3Client - mock S3 client for unit tests. Tests fill in the Exp*Input
// requests they expect to be made, and the Queued*Output responses to return
// for each. A nil queued output makes the call fail (GetObject/HeadObject fail
// with a not-found error). Don't forget to call FinishTest() at the end of your
// test to check that all calls to S3 were made, and there were no unexpected calls!
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpGetObjectInput     []s3.GetObjectInput
	ExpHeadObjectInput    []s3.HeadObjectInput
	ExpPutObjectInput     []s3.PutObjectInput
	ExpDeleteObjectInput  []s3.DeleteObjectInput

	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
	QueuedDeleteObjectOutput  []*s3.DeleteObjectOutput

	// Parallel loaders request objects in no particular order
	AllowGetInAnyOrder bool
}

// NOTE: This function MUST be called at the end of a unit test/example test. Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()

	// Print so example tests see it in their output
	if err != nil {
		fmt.Println(err)
	}

	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	remaining := []struct {
		name string
		exp  int
		out  int
	}{
		{"ListObjectsV2", len(m.ExpListObjectsV2Input), len(m.QueuedListObjectsV2Output)},
		{"GetObject", len(m.ExpGetObjectInput), len(m.QueuedGetObjectOutput)},
		{"HeadObject", len(m.ExpHeadObjectInput), len(m.QueuedHeadObjectOutput)},
		{"PutObject", len(m.ExpPutObjectInput), len(m.QueuedPutObjectOutput)},
		{"DeleteObject", len(m.ExpDeleteObjectInput), len(m.QueuedDeleteObjectOutput)},
	}

	for _, r := range remaining {
		if r.exp > 0 {
			return fmt.Errorf("Test expected more %v calls to func", r.name)
		}
		if r.out > 0 {
			return fmt.Errorf("Remaining output %v for func", r.name)
		}
	}
	return nil
}

type stringer interface {
	String() string
}

// nextCall - checks input against the next expected request (or any expected
// request if anyOrder) and pops the matching queued output
func nextCall[I stringer, O any](name string, input I, expected *[]I, outputs *[]*O, anyOrder bool) (*O, error) {
	if len(*expected) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	inpStr := input.String()
	idx := 0
	if anyOrder {
		for c, exp := range *expected {
			if exp.String() == inpStr {
				idx = c
				break
			}
		}
	}

	expStr := (*expected)[idx].String()
	*expected = append((*expected)[:idx], (*expected)[idx+1:]...)

	if expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"\n", ErrWrongInput+name, expStr, inpStr)
	}

	if len(*outputs) <= idx {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := (*outputs)[idx]
	*outputs = append((*outputs)[:idx], (*outputs)[idx+1:]...)

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}
	return result, nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return nextCall("ListObjectsV2", *input, &m.ExpListObjectsV2Input, &m.QueuedListObjectsV2Output, false)
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out, err := nextCall("GetObject", *input, &m.ExpGetObjectInput, &m.QueuedGetObjectOutput, m.AllowGetInAnyOrder)
	if err != nil && err.Error() == ErrReturningError+"GetObject" {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, err.Error(), nil)
	}
	return out, err
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out, err := nextCall("HeadObject", *input, &m.ExpHeadObjectInput, &m.QueuedHeadObjectOutput, false)
	if err != nil && err.Error() == ErrReturningError+"HeadObject" {
		return nil, awserr.New("NotFound", err.Error(), nil)
	}
	return out, err
}

func (m *MockS3Client) DeleteObject(input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return nextCall("DeleteObject", *input, &m.ExpDeleteObjectInput, &m.QueuedDeleteObjectOutput, false)
}

func readBody(r io.Reader) string {
	if r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "ERROR GETTING DATA"
	}
	return string(data)
}

// PutObject - String() on the input doesn't include the body, so bucket, key
// and body are compared individually
func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"
	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp := m.ExpPutObjectInput[0]
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	if *input.Bucket != *exp.Bucket {
		return nil, fmt.Errorf("%v - bucket\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput+name, *exp.Bucket, *input.Bucket)
	}
	if *input.Key != *exp.Key {
		return nil, fmt.Errorf("%v - key\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput+name, *exp.Key, *input.Key)
	}

	// A nil expected body means the test doesn't care about the contents
	if exp.Body != nil {
		if inpBody, expBody := readBody(input.Body), readBody(exp.Body); inpBody != expBody {
			return nil, fmt.Errorf("%v - body\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput+name, expBody, inpBody)
		}
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}
	return result, nil
}
