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

package reporoot

import (
	"path/filepath"
	"strings"

	"github.com/magefile/mage/sh"
	"github.com/pkg/errors"
)

// Error is returned when the repository root cannot be determined.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "failed to determine git root: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver asks git for the top-level directory of the enclosing
// repository.
type Resolver struct {
	// Git is the git executable, "git" if empty.
	Git string

	// Dir is the directory git is run from. The process working
	// directory is used if empty.
	Dir string

	// Env holds extra environment variables for the git process.
	Env map[string]string
}

// Resolve returns the absolute, symlink-free repository root.
func (r Resolver) Resolve() (string, error) {
	git := r.Git
	if git == "" {
		git = "git"
	}
	var args []string
	if r.Dir != "" {
		args = append(args, "-C", r.Dir)
	}
	args = append(args, "rev-parse", "--show-toplevel")

	out, err := sh.OutputWith(r.Env, git, args...)
	if err != nil {
		return "", &Error{err}
	}
	root := strings.TrimSpace(out)
	if root == "" {
		return "", &Error{errors.New("git reported an empty top-level directory")}
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return "", &Error{err}
	}
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return "", &Error{err}
	}
	return root, nil
}
