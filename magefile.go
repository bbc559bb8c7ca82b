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

//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var binary = filepath.Join("build", "validate-json")

// Build builds the validate-json binary.
func Build() error {
	return sh.RunV("go", "build", "-o", binary, ".")
}

// Test runs the unit tests with gotestsum.
func Test() error {
	return sh.RunV("go", "run", "gotest.tools/gotestsum", "--format", "testname", "--", "./...")
}

// Validate checks the bundled example against the bundled schemas.
func Validate() error {
	mg.Deps(Build)
	return sh.RunV(binary)
}

// CheckApprovals interactively approves *.received.json files left by
// failing approval tests.
func CheckApprovals() error {
	return sh.RunV("go", "run", "./internal/approvaltest/cmd/check-approvals")
}

// CheckHeaders verifies that every source file carries the license header.
func CheckHeaders() error {
	return sh.RunV("go", "run", "github.com/elastic/go-licenser", "-d", "-exclude", "_examples")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("build")
}

// Check runs the header check and the tests.
func Check() {
	mg.SerialDeps(CheckHeaders, Test)
}
