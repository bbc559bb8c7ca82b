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

// check-approvals walks a directory tree for *.received.json files left
// behind by failing approval tests, shows the diff against the approved
// file and renames the received file on confirmation.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/linecorp/decaton-jsonschema/internal/approvaltest"
)

func main() {
	var (
		dir string
		yes bool
	)
	pflag.StringVarP(&dir, "dir", "d", ".", "directory to search for received files")
	pflag.BoolVarP(&yes, "yes", "y", false, "approve all changes without asking")
	pflag.Parse()
	os.Exit(approval(dir, yes, os.Stdin, os.Stdout))
}

func approval(dir string, yes bool, in io.Reader, out io.Writer) int {
	receivedFiles, err := findFiles(dir, approvaltest.ReceivedSuffix)
	if err != nil {
		fmt.Fprintln(out, "Could not search for received files:", err)
		return 3
	}

	added := color.New(color.FgBlack, color.BgGreen).SprintFunc()
	deleted := color.New(color.FgBlack, color.BgRed).SprintFunc()
	reader := bufio.NewReader(in)
	var approved int
	for _, rf := range receivedFiles {
		af := strings.TrimSuffix(rf, approvaltest.ReceivedSuffix) + approvaltest.ApprovedSuffix

		var approvedDoc, receivedDoc interface{}
		if err := decodeJSONFile(rf, &receivedDoc); err != nil {
			fmt.Fprintln(out, "Could not create diff", err)
			return 3
		}
		if err := decodeJSONFile(af, &approvedDoc); err != nil && !os.IsNotExist(err) {
			fmt.Fprintln(out, "Could not create diff", err)
			return 3
		}

		scanner := bufio.NewScanner(strings.NewReader(cmp.Diff(approvedDoc, receivedDoc)))
		for scanner.Scan() {
			line := scanner.Text()
			if len(line) > 0 {
				switch line[0] {
				case '-':
					line = deleted(line)
				case '+':
					line = added(line)
				}
			}
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, rf)

		if !yes {
			fmt.Fprintln(out, "\nApprove Changes? (y/n)")
			input, _, _ := reader.ReadRune()
			if input != 'y' {
				continue
			}
		}
		if err := os.Rename(rf, af); err != nil {
			fmt.Fprintln(out, "Could not approve", rf, err)
			return 3
		}
		approved++
	}
	fmt.Fprintf(out, "approved %d of %d received files\n", approved, len(receivedFiles))
	return 0
}

// findFiles skips vendor and underscore-prefixed directories, which the
// go tool ignores as well.
func findFiles(rootDir string, suffix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != rootDir && (name == "vendor" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, suffix) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func decodeJSONFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("cannot unmarshal file %q: %w", path, err)
	}
	return nil
}
