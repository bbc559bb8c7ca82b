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

package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pattern = "decaton-processor-properties-schema-*.json"

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"decaton-processor-properties-schema-draft_7.json",
		"decaton-processor-properties-schema-draft_2020_12.json",
		"decaton-processor-properties-schema-draft_2019_09-allow-additional-properties.json",
		"central-dogma-decaton-properties-example.json",
		"decaton-processor-properties-schema-draft_7.yaml",
		"README.md",
	)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "decaton-processor-properties-schema-dir.json"), 0755))

	paths, err := Find(dir, pattern)
	require.NoError(t, err)

	var names []string
	for _, p := range paths {
		assert.True(t, filepath.IsAbs(p))
		assert.Equal(t, dir, filepath.Dir(p))
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{
		"decaton-processor-properties-schema-draft_2019_09-allow-additional-properties.json",
		"decaton-processor-properties-schema-draft_2020_12.json",
		"decaton-processor-properties-schema-draft_7.json",
	}, names)
}

func TestFindDeterministic(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"decaton-processor-properties-schema-b.json",
		"decaton-processor-properties-schema-a.json",
		"decaton-processor-properties-schema-c.json",
	)
	first, err := Find(dir, pattern)
	require.NoError(t, err)
	second, err := Find(dir, pattern)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
}

func TestFindNoMatches(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "central-dogma-decaton-properties-example.json")

	paths, err := Find(dir, pattern)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFindMissingDir(t *testing.T) {
	paths, err := Find(filepath.Join(t.TempDir(), "does", "not", "exist"), pattern)
	require.NoError(t, err)
	assert.Empty(t, paths)
}
