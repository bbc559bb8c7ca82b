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

package config

import (
	"path/filepath"
	"strings"

	"github.com/elastic/go-ucfg"
	"github.com/pkg/errors"
)

// EnvPrefix is prepended to the upper-cased option name to form the
// environment variable that overrides it, e.g. DECATON_JSONSCHEMA_ENGINE.
const EnvPrefix = "DECATON_JSONSCHEMA_"

var options = []string{
	"dist_dir",
	"schema_pattern",
	"default_target",
	"engine",
	"log_level",
	"git",
}

// Config holds the settings of a validate-json run.
type Config struct {
	// DistDir is the directory, relative to the repository root,
	// holding the bundled schemas and the example document.
	DistDir string `config:"dist_dir"`

	// SchemaPattern selects schema files by base name. Only the
	// `*` wildcard is supported.
	SchemaPattern string `config:"schema_pattern"`

	// DefaultTarget is the file name, inside DistDir, of the document
	// validated when no target is given on the command line.
	DefaultTarget string `config:"default_target"`

	Engine   string `config:"engine"`
	LogLevel string `config:"log_level"`
	Git      string `config:"git"`
}

// DefaultConfig returns the configuration used when no overrides are set.
func DefaultConfig() Config {
	return Config{
		DistDir:       filepath.Join("jsonschema", "dist"),
		SchemaPattern: "decaton-processor-properties-schema-*.json",
		DefaultTarget: "central-dogma-decaton-properties-example.json",
		Engine:        "jsonschema",
		LogLevel:      "warn",
		Git:           "git",
	}
}

// Validate is called by go-ucfg after unpacking.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"dist_dir":       c.DistDir,
		"schema_pattern": c.SchemaPattern,
		"default_target": c.DefaultTarget,
		"git":            c.Git,
	} {
		if v == "" {
			return errors.Errorf("%s must not be empty", name)
		}
	}
	if filepath.IsAbs(c.DistDir) {
		return errors.Errorf("dist_dir must be relative to the repository root, got %q", c.DistDir)
	}
	if strings.ContainsAny(c.SchemaPattern, `/\`) {
		return errors.Errorf("schema_pattern must match a file name, got %q", c.SchemaPattern)
	}
	if strings.ContainsAny(c.DefaultTarget, `/\`) {
		return errors.Errorf("default_target must be a file name, got %q", c.DefaultTarget)
	}
	switch c.Engine {
	case "jsonschema", "gojsonschema":
	default:
		return errors.Errorf("unknown engine %q", c.Engine)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// DefaultTargetPath returns the default target relative to the repository root.
func (c Config) DefaultTargetPath() string {
	return filepath.Join(c.DistDir, c.DefaultTarget)
}

// FromEnv builds a Config from the defaults overridden by any
// DECATON_JSONSCHEMA_* variables reported by lookup.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	settings := make(map[string]interface{})
	for _, name := range options {
		if v, ok := lookup(EnvPrefix + strings.ToUpper(name)); ok {
			settings[name] = v
		}
	}
	return New(settings)
}

// New unpacks settings on top of DefaultConfig.
func New(settings map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	in, err := ucfg.NewFrom(settings, ucfg.PathSep("."))
	if err != nil {
		return cfg, errors.Wrap(err, "error reading config")
	}
	if err := in.Unpack(&cfg); err != nil {
		return cfg, errors.Wrap(err, "error unpacking config")
	}
	return cfg, nil
}
