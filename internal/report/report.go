// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a YAML summary of a conversion run, for users who
// want a machine-readable record of what a migration did.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/passmigrate/pkg/types"
)

// Report is the YAML document written after a run.
type Report struct {
	// Source is the input file the run consumed.
	Source string `yaml:"source"`

	// Target is the destination format.
	Target types.Target `yaml:"target"`

	// CompletedAt is the run completion time in RFC 3339 UTC.
	CompletedAt string `yaml:"completed_at"`

	Result types.Result `yaml:"result"`
}

// New assembles a Report for a finished run, stamped with the current time.
func New(source string, target types.Target, res types.Result) Report {
	return Report{
		Source:      source,
		Target:      target,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		Result:      res,
	}
}

// Write marshals r as YAML to w.
func (r Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the report to path, creating or truncating it.
func (r Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := r.Write(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	return nil
}
