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
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// tempDir returns a symlink-free temporary directory that git will not
// treat as part of an enclosing repository.
func tempDir(t *testing.T) (string, map[string]string) {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir, map[string]string{"GIT_CEILING_DIRECTORIES": filepath.Dir(dir)}
}

func TestResolve(t *testing.T) {
	requireGit(t)
	dir, env := tempDir(t)
	cmd := exec.Command("git", "init", "-q", dir)
	require.NoError(t, cmd.Run())

	nested := filepath.Join(dir, "jsonschema", "dist")
	require.NoError(t, os.MkdirAll(nested, 0755))

	root, err := Resolver{Dir: nested, Env: env}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestResolveNotARepository(t *testing.T) {
	requireGit(t)
	dir, env := tempDir(t)

	_, err := Resolver{Dir: dir, Env: env}.Resolve()
	require.Error(t, err)
	var rootErr *Error
	require.True(t, errors.As(err, &rootErr))
	assert.Contains(t, err.Error(), "failed to determine git root")
}

func TestResolveGitMissing(t *testing.T) {
	_, err := Resolver{Git: "git-does-not-exist-anywhere"}.Resolve()
	require.Error(t, err)
	var rootErr *Error
	assert.True(t, errors.As(err, &rootErr))
}
