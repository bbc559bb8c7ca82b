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

package approvaltest

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	// ApprovedSuffix signals a file has been reviewed and approved.
	ApprovedSuffix = ".approved.json"

	// ReceivedSuffix signals a file has changed and not yet been approved.
	ReceivedSuffix = ".received.json"
)

// ApproveJSON compares the given JSON-encoded value with the
// contents of the file "<name>.approved.json".
//
// Any specified dynamic fields (e.g. temporary paths) will be
// replaced with a static string for comparison.
//
// If the value differs, then the test will fail.
func ApproveJSON(t testing.TB, name string, encoded []byte, dynamic ...string) {
	t.Helper()

	// Rewrite all dynamic fields to have a known value,
	// so dynamic fields don't affect diffs.
	for _, field := range dynamic {
		if !gjson.GetBytes(encoded, field).Exists() {
			continue
		}
		var err error
		encoded, err = sjson.SetBytes(encoded, field, "dynamic")
		if err != nil {
			t.Fatal(err)
		}
	}

	var decoded interface{}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatal(err)
	}
	approve(t, name, decoded)
}

// approve compares the given value with the contents of the file
// "<name>.approved.json".
//
// If the value differs, then the test will fail.
func approve(t testing.TB, name string, received interface{}) {
	t.Helper()

	var approved interface{}
	readApproved(name, &approved)
	if diff := cmp.Diff(approved, received); diff != "" {
		writeReceived(name, received)
		t.Fatalf("%s\n%s\n\n", diff,
			"Run `mage checkApprovals` to verify the diff",
		)
	} else {
		// Remove an old *.received.json file if it exists.
		removeReceived(name)
	}
}

func readApproved(name string, approved interface{}) {
	path := name + ApprovedSuffix
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return
	} else if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&approved); err != nil {
		panic(fmt.Errorf("cannot unmarshal file %q: %w", path, err))
	}
}

func removeReceived(name string) {
	os.Remove(name + ReceivedSuffix)
}

func writeReceived(name string, received interface{}) {
	f, err := os.Create(name + ReceivedSuffix)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(received); err != nil {
		panic(err)
	}
}
