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

package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/linecorp/decaton-jsonschema/validation"
)

var (
	passMark = color.New(color.FgGreen)
	failMark = color.New(color.FgRed)
)

// TargetError is returned when the target document cannot be read or
// parsed. No schema is evaluated in that case.
type TargetError struct {
	Path string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("invalid target JSON %s: %s", e.Path, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// Outcome is the result of validating the target against one schema.
type Outcome struct {
	// Schema is the base name of the schema file.
	Schema string

	// Err is nil if the schema accepted the target.
	Err error
}

// Passed reports whether the schema accepted the target.
func (o Outcome) Passed() bool {
	return o.Err == nil
}

// Report holds the outcomes of a run, in schema order.
type Report struct {
	Target   string
	Outcomes []Outcome
}

// Passed reports whether every schema accepted the target. A report
// without outcomes passes.
func (r *Report) Passed() bool {
	for _, o := range r.Outcomes {
		if !o.Passed() {
			return false
		}
	}
	return true
}

// Err returns all schema failures combined, or nil if the run passed.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			result = multierror.Append(result, errors.Wrap(o.Err, o.Schema))
		}
	}
	return result.ErrorOrNil()
}

// Runner validates a target document against a list of schema files.
type Runner struct {
	Engine validation.Engine

	// Stdout receives one line per accepted schema, Stderr the
	// details of every rejection.
	Stdout io.Writer
	Stderr io.Writer

	Logger *zap.Logger
}

// Run validates target against each of schemas, in order. Schema
// failures are recorded in the report and do not stop the run; the
// returned error is reserved for a target that cannot be read or parsed.
func (r *Runner) Run(target string, schemas []string) (*Report, error) {
	logger := r.logger()
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, &TargetError{Path: target, Err: err}
	}
	doc, err := validation.ParseDocument(data)
	if err != nil {
		return nil, &TargetError{Path: target, Err: err}
	}
	logger.Debug("loaded target document",
		zap.String("path", target),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.String("engine", r.Engine.Name()),
	)

	report := &Report{Target: target, Outcomes: make([]Outcome, 0, len(schemas))}
	for _, path := range schemas {
		outcome := Outcome{Schema: filepath.Base(path), Err: r.validate(path, doc)}
		report.Outcomes = append(report.Outcomes, outcome)
		r.print(outcome)
	}
	logger.Debug("validation finished",
		zap.Int("schemas", len(report.Outcomes)),
		zap.Bool("passed", report.Passed()),
	)
	return report, nil
}

func (r *Runner) validate(path string, doc interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading schema")
	}
	schema, err := r.Engine.Compile(path, data)
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}

func (r *Runner) print(o Outcome) {
	if o.Passed() {
		fmt.Fprintf(r.Stdout, "%s  %s ... ok\n", passMark.Sprint("✅"), o.Schema)
		return
	}
	detail := strings.ReplaceAll(o.Err.Error(), "\n", "\n   ")
	fmt.Fprintf(r.Stderr, "%s  %s\n   %s\n\n", failMark.Sprint("❌"), o.Schema, detail)
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
