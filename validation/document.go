// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
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

package validation

import (
	jsoniter "github.com/json-iterator/go"
)

// Numbers are kept as json.Number so that integers outside the float64
// range, such as Long.MAX_VALUE defaults, survive decoding.
var jsonAPI = jsoniter.Config{
	EscapeHTML: true,
	UseNumber:  true,
}.Froze()

// ParseDocument decodes a JSON document into generic Go values.
func ParseDocument(data []byte) (interface{}, error) {
	var doc interface{}
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
