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
	"io"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/pixlise/hyperspectral/api/services"
	"github.com/pixlise/hyperspectral/core/logger"
)

// How many chars of request body to display in logs
const bodyTextReqLogLength = 200

// How many chars of resp body to display in logs
const bodyTextRespLogHeadLength = 600

// How many chars of resp body to display in logs
const bodyTextRespLogTailLength = 300

// If req/resp body is longer than the limits, we print this to show it was cut off
const logSnipIndicator = "\n    ---- >8 -------- >8 -------- >8 -------- >8 ----\n"

type LoggerMiddleware struct {
	*services.APIServices
}

func snipRequestBody(body string) string {
	if len(body) > bodyTextReqLogLength {
		return body[0:bodyTextReqLogLength] + logSnipIndicator
	}
	return body
}

func snipResponseBody(body string) string {
	if len(body) > bodyTextRespLogHeadLength+bodyTextRespLogTailLength {
		return body[0:bodyTextRespLogHeadLength] +
			logSnipIndicator +
			body[len(body)-bodyTextRespLogTailLength:] +
			"^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^^\n"
	}
	return body
}

func (h *LoggerMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Read the HTTP body. We can log it here if required, and then we pass it into the next in chain.
		// Requests built in-process may have no body at all
		reqBodyText := ""
		if r.Body != nil {
			bodyBytes, err := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			reqBodyText = "REQ BODY ERROR"
			if err == nil {
				reqBodyText = snipRequestBody(string(bodyBytes))
			}
		}

		// Write to the http response AND store it so we can log it
		buf := new(bytes.Buffer)
		w2 := &responseWriterWithCopy{RealWriter: w, Body: buf, Status: 0}

		next.ServeHTTP(w2, r)

		// We only log if we're in debug log level OR we detected an error
		hadError := w2.statusCode() >= http.StatusBadRequest

		// Zips and other downloads are not worth logging
		respBodyTxt := fmt.Sprintf("Body data length: %v bytes", buf.Len())
		if w2.Header().Get("Content-Type") != "application/octet-stream" {
			respBodyTxt = snipResponseBody(buf.String())
		}

		level := logger.LogDebug
		if hadError {
			level = logger.LogError

			msg := fmt.Sprintf("API returned %v for %v \"%v %v\", query params: %v. Response body: \"%v\"",
				w2.Status,
				r.Method,
				r.Host,
				r.URL,
				r.URL.Query(),
				respBodyTxt,
			)
			sentry.CaptureMessage(msg)
		}

		// Don't log requests to / as some load balancer seems to be doing this constantly, so we lose all other logs
		// in the sea of requests to /
		if r.URL.Path == "/" || r.URL.Path == "/metrics" {
			return
		}

		if hadError || h.Config.LogLevel == logger.LogDebug {
			params := []string{"method=" + r.Method}
			for name, values := range r.URL.Query() {
				params = append(params, "queryparam"+name+"="+strings.Join(values, "; "))
			}

			h.Log.Printf(level, "Request: %v (%v), params: %v, body: %v\nResponse status: %v, body: %v", r.URL, r.Method, params, reqBodyText, w2.StatusText(), respBodyTxt)
		}
	})
}
