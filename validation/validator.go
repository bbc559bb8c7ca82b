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
)

// Error represents an error due to JSON validation.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "error validating JSON: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SchemaError is returned when a schema cannot be used for validation,
// either because it is not valid JSON or because it does not conform
// to its meta-schema.
type SchemaError struct {
	Schema string
	Err    error
}

func (e *SchemaError) Error() string {
	return "invalid schema " + e.Schema + ": " + e.Err.Error()
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Engine compiles JSON Schema documents into validators.
type Engine interface {
	// Name identifies the engine in configuration and logs.
	Name() string

	// Compile parses schema, checks it against the meta-schema of its
	// dialect and returns a validator bound to it. url identifies the
	// schema in error messages and when resolving references.
	//
	// Errors are of type *SchemaError.
	Compile(url string, schema []byte) (Schema, error)
}

// Schema validates decoded JSON documents, as returned by ParseDocument.
type Schema interface {
	// Validate returns a *Error describing every violated
	// constraint, or nil if doc is valid.
	Validate(doc interface{}) error
}

// NewEngine returns the engine registered under name.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", jsonSchemaEngineName:
		return JSONSchema(), nil
	case goJSONSchemaEngineName:
		return GoJSONSchema(), nil
	}
	return nil, errors.Errorf("unknown validation engine %q", name)
}
