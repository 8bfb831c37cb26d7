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

package endpoints

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pixlise/hyperspectral/core/logger"
	"github.com/prometheus/client_golang/prometheus"
)

func Example_loggerMiddleware() {
	ll := logger.LogInfo
	svcs := MakeMockSvcs(nil, &ll)
	apiRouter := MakeRouter(svcs)

	logware := LoggerMiddleware{APIServices: &svcs}
	apiRouter.Router.Use(logware.Middleware)

	// Not logged at info level
	req, _ := http.NewRequest("GET", "/viz/viz1", nil)
	resp := executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)

	req, _ = http.NewRequest("POST", "/scenes/s9/pca", bytes.NewReader([]byte("{}")))
	resp = executeRequest(req, apiRouter.Router)
	fmt.Println(resp.Code)

	// Output:
	// 200
	// ERROR: Request: /scenes/s9/pca (POST), Result: status=404, error=s9 not found
	// ERROR: Request: /scenes/s9/pca (POST), params: [method=POST], body: {}
	// Response status: 404, body: s9 not found
	//
	// 404
}

func Test_snipBodies(t *testing.T) {
	short := "short body"
	if snipRequestBody(short) != short || snipResponseBody(short) != short {
		t.Error("short bodies should not be cut")
	}

	long := make([]byte, 2000)
	for c := range long {
		long[c] = 'a' + byte(c%26)
	}

	req := snipRequestBody(string(long))
	if len(req) != bodyTextReqLogLength+len(logSnipIndicator) {
		t.Errorf("unexpected request snip length %v", len(req))
	}

	resp := snipResponseBody(string(long))
	if resp[:bodyTextRespLogHeadLength] != string(long[:bodyTextRespLogHeadLength]) {
		t.Error("response head not kept")
	}
	tailStart := bodyTextRespLogHeadLength + len(logSnipIndicator)
	if resp[tailStart:tailStart+bodyTextRespLogTailLength] != string(long[len(long)-bodyTextRespLogTailLength:]) {
		t.Error("response tail not kept")
	}
}

func requestCount(t *testing.T, path string, method string, status string) float64 {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{"path": path, "method": method, "status": status}
	for _, f := range families {
		if f.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			match := 0
			for _, l := range m.GetLabel() {
				if want[l.GetName()] == l.GetValue() {
					match++
				}
			}
			if match == len(want) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func Test_prometheusMiddleware(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)
	apiRouter.Router.Use(PrometheusMiddleware)

	okBefore := requestCount(t, "/scenes/{id}", "GET", "200")
	notFoundBefore := requestCount(t, "/scenes/{id}", "GET", "404")

	for _, id := range []string{"s1", "s2", "s9"} {
		req, _ := http.NewRequest("GET", "/scenes/"+id, nil)
		executeRequest(req, apiRouter.Router)
	}

	if got := requestCount(t, "/scenes/{id}", "GET", "200") - okBefore; got != 2 {
		t.Errorf("expected 2 ok requests counted, got %v", got)
	}
	if got := requestCount(t, "/scenes/{id}", "GET", "404") - notFoundBefore; got != 1 {
		t.Errorf("expected 1 not found request counted, got %v", got)
	}
}

func Test_nilRequestBody(t *testing.T) {
	svcs := MakeMockSvcs(nil, nil)
	apiRouter := MakeRouter(svcs)
	logware := LoggerMiddleware{APIServices: &svcs}
	apiRouter.Router.Use(logware.Middleware)

	// Straight to the router, so Body stays nil
	for _, path := range []string{"/scenes/s1/normalise", "/scenes/s1/pca"} {
		req, _ := http.NewRequest("POST", path, nil)
		rr := httptest.NewRecorder()
		apiRouter.Router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("%v with no body: %v %v", path, rr.Code, rr.Body.String())
		}
	}

	var req pcaRequest
	if err := readBody(nil, &req); err != nil {
		t.Errorf("nil body: %v", err)
	}
	if err := readBody(strings.NewReader("not json"), &req); err == nil {
		t.Error("expected bad JSON to fail")
	}
}
