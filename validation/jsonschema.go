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
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const jsonSchemaEngineName = "jsonschema"

// JSONSchema returns the default engine. It supports drafts 4, 6, 7,
// 2019-09 and 2020-12, picks the dialect from "$schema" and falls back
// to the library default (2020-12) when it is absent.
func JSONSchema() Engine {
	return jsonSchemaEngine{}
}

type jsonSchemaEngine struct{}

func (jsonSchemaEngine) Name() string {
	return jsonSchemaEngineName
}

func (jsonSchemaEngine) Compile(url string, schema []byte) (Schema, error) {
	doc, err := ParseDocument(schema)
	if err != nil {
		return nil, &SchemaError{Schema: url, Err: errors.Wrap(err, "malformed JSON")}
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, &SchemaError{Schema: url, Err: err}
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, &SchemaError{Schema: url, Err: err}
	}
	return jsonSchema{compiled}, nil
}

type jsonSchema struct {
	schema *jsonschema.Schema
}

func (s jsonSchema) Validate(doc interface{}) error {
	if err := s.schema.Validate(doc); err != nil {
		return &Error{err}
	}
	return nil
}
