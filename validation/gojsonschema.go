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
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

const goJSONSchemaEngineName = "gojsonschema"

// gojsonschema ships the meta-schemas of these drafts only; any other
// dialect would be fetched over the network.
var goJSONSchemaDrafts = map[string]gojsonschema.Draft{
	"http://json-schema.org/draft-04/schema": gojsonschema.Draft4,
	"http://json-schema.org/draft-06/schema": gojsonschema.Draft6,
	"http://json-schema.org/draft-07/schema": gojsonschema.Draft7,
}

// GoJSONSchema returns an engine backed by gojsonschema. It supports
// drafts 4, 6 and 7 and assumes draft 7 when "$schema" is absent.
func GoJSONSchema() Engine {
	return goJSONSchemaEngine{}
}

type goJSONSchemaEngine struct{}

func (goJSONSchemaEngine) Name() string {
	return goJSONSchemaEngineName
}

func (goJSONSchemaEngine) Compile(url string, schema []byte) (Schema, error) {
	doc, err := ParseDocument(schema)
	if err != nil {
		return nil, &SchemaError{Schema: url, Err: errors.Wrap(err, "malformed JSON")}
	}
	draft, err := goJSONSchemaDraft(doc)
	if err != nil {
		return nil, &SchemaError{Schema: url, Err: err}
	}
	loader := gojsonschema.NewSchemaLoader()
	loader.AutoDetect = false
	loader.Draft = draft
	loader.Validate = true
	compiled, err := loader.Compile(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &SchemaError{Schema: url, Err: err}
	}
	return goJSONSchema{compiled}, nil
}

func goJSONSchemaDraft(doc interface{}) (gojsonschema.Draft, error) {
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return gojsonschema.Draft7, nil
	}
	v, ok := obj["$schema"]
	if !ok {
		return gojsonschema.Draft7, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, errors.Errorf("$schema must be a string, got %T", v)
	}
	normalized := strings.TrimSuffix(s, "#")
	normalized = strings.Replace(normalized, "https://", "http://", 1)
	draft, ok := goJSONSchemaDrafts[normalized]
	if !ok {
		return 0, errors.Errorf("unsupported $schema %q", s)
	}
	return draft, nil
}

type goJSONSchema struct {
	schema *gojsonschema.Schema
}

func (s goJSONSchema) Validate(doc interface{}) error {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &Error{err}
	}
	if !result.Valid() {
		return &Error{resultErrors(result.Errors())}
	}
	return nil
}

type resultErrors []gojsonschema.ResultError

func (errs resultErrors) Error() string {
	var b strings.Builder
	b.WriteString("document does not conform to the schema")
	for _, e := range errs {
		fmt.Fprintf(&b, "\n- at '%s': %s", e.Field(), e.Description())
	}
	return b.String()
}
