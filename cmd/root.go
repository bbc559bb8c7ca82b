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

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linecorp/decaton-jsonschema/internal/config"
	"github.com/linecorp/decaton-jsonschema/internal/discovery"
	"github.com/linecorp/decaton-jsonschema/internal/logs"
	"github.com/linecorp/decaton-jsonschema/internal/reporoot"
	"github.com/linecorp/decaton-jsonschema/internal/runner"
	"github.com/linecorp/decaton-jsonschema/validation"
)

// Name of the command.
const Name = "validate-json"

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError is returned for invalid command line arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// failedError signals that at least one schema rejected the target.
// The failures have already been reported.
type failedError struct {
	err error
}

func (e *failedError) Error() string {
	return e.err.Error()
}

// Options configures a command invocation.
type Options struct {
	Config config.Config

	// ResolveRoot returns the repository root. If nil, git is asked
	// using Config.Git.
	ResolveRoot func() (string, error)

	Stdout io.Writer
	Stderr io.Writer
}

// Main runs the command with configuration taken from the environment
// and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid configuration: %v\n", err)
		return ExitFailure
	}
	return Execute(Options{Config: cfg, Stdout: stdout, Stderr: stderr}, args)
}

// Execute runs the command and returns the process exit code.
func Execute(opts Options, args []string) int {
	logger, err := logs.New(opts.Stderr, opts.Config.LogLevel)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "Error: invalid configuration: %v\n", err)
		return ExitFailure
	}
	defer logger.Sync()

	rootCmd := NewRootCommand(opts, logger)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()

	var usageErr *UsageError
	var failedErr *failedError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &failedErr):
		logger.Debug("validation failed", zap.Error(failedErr.err))
		return ExitFailure
	case errors.As(err, &usageErr):
		fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
		fmt.Fprint(opts.Stderr, rootCmd.UsageString())
		return ExitUsage
	}
	fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
	return ExitFailure
}

// NewRootCommand returns the validate-json command.
func NewRootCommand(opts Options, logger *zap.Logger) *cobra.Command {
	cfg := opts.Config
	resolveRoot := opts.ResolveRoot
	if resolveRoot == nil {
		resolveRoot = reporoot.Resolver{Git: cfg.Git}.Resolve
	}

	rootCmd := &cobra.Command{
		Use:   Name + " [target]",
		Short: "Validate Decaton property JSON against all bundled schemas.",
		Long: fmt.Sprintf(`Validate Decaton property JSON against all bundled schemas.

Every file in %s matching %s is compiled
and checked against the target document. The command exits non-zero if
any schema rejects it.

Arguments:
  target   JSON file to validate (default: %s)`,
			cfg.DistDir, cfg.SchemaPattern, cfg.DefaultTargetPath(),
		),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &UsageError{err}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, resolveRoot, args, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		},
	}
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{err}
	})
	return rootCmd
}

func run(
	cfg config.Config,
	resolveRoot func() (string, error),
	args []string,
	stdout, stderr io.Writer,
	logger *zap.Logger,
) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	logger.Named(logs.RepoRoot).Debug("resolved repository root", zap.String("root", root))

	target := filepath.Join(root, cfg.DefaultTargetPath())
	if len(args) == 1 {
		target = args[0]
	}
	if _, err := os.Stat(target); err != nil {
		return &UsageError{errors.Errorf("target JSON not found: %s", target)}
	}
	if target, err = filepath.Abs(target); err != nil {
		return errors.Wrap(err, "resolving target path")
	}

	engine, err := validation.NewEngine(cfg.Engine)
	if err != nil {
		return err
	}

	distDir := filepath.Join(root, cfg.DistDir)
	schemas, err := discovery.Find(distDir, cfg.SchemaPattern)
	if err != nil {
		return err
	}
	discoveryLogger := logger.Named(logs.Discovery)
	if len(schemas) == 0 {
		discoveryLogger.Warn("no schema files matched, nothing was validated",
			zap.String("dir", distDir),
			zap.String("pattern", cfg.SchemaPattern),
		)
	} else {
		discoveryLogger.Debug("discovered schema files", zap.Int("count", len(schemas)))
	}

	r := runner.Runner{
		Engine: engine,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger.Named(logs.Runner),
	}
	report, err := r.Run(target, schemas)
	if err != nil {
		return err
	}
	if err := report.Err(); err != nil {
		return &failedError{err}
	}
	return nil
}
