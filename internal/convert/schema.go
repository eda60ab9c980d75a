// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/pdiddy/passmigrate/pkg/types"
)

// Schema describes one destination format: its ordered output columns and the
// projection from a source record to a row. Adding a target means adding one
// entry to schemaFor, nothing else.
type Schema struct {
	Target  types.Target
	Columns []string

	// HasVault reports whether the format supports a vault column. When set,
	// Header and Row prepend the vault column ahead of Columns, filled from
	// the run options.
	HasVault bool

	// row projects a record into the Columns values. splitNotes asks for the
	// notes column to be left empty because notes go to the side file instead.
	row func(rec types.SourceRecord, splitNotes bool) []string
}

// Header returns the full output header, including the vault column for
// formats that group entries into vaults.
func (s Schema) Header() []string {
	if s.HasVault {
		return append([]string{"vault"}, s.Columns...)
	}
	return s.Columns
}

// Row projects rec into one output row under opts.
func (s Schema) Row(rec types.SourceRecord, opts types.Options) []string {
	row := s.row(rec, opts.SplitNotes)
	if s.HasVault {
		return append([]string{opts.Vault()}, row...)
	}
	return row
}

// schemaFor returns the schema for t, or ErrUnsupportedTarget for a selector
// outside the known set.
func schemaFor(t types.Target) (Schema, error) {
	switch t {
	case types.TargetProton:
		return Schema{
			Target:   types.TargetProton,
			Columns:  []string{"title", "username", "password", "url", "notes", "otp"},
			HasVault: true,
			row: func(rec types.SourceRecord, splitNotes bool) []string {
				notes := rec.Notes
				if splitNotes {
					notes = ""
				}
				return []string{rec.Title, rec.Username, rec.Password, rec.URL, notes, rec.OTPSecret}
			},
		}, nil
	case types.TargetLastPass:
		return Schema{
			Target:  types.TargetLastPass,
			Columns: []string{"url", "username", "password", "extra", "name", "grouping"},
			// extra is LastPass's notes column; grouping stays empty since
			// TrueKey exports carry no folder structure.
			row: func(rec types.SourceRecord, splitNotes bool) []string {
				extra := rec.Notes
				if splitNotes {
					extra = ""
				}
				return []string{rec.URL, rec.Username, rec.Password, extra, rec.Title, ""}
			},
		}, nil
	case types.TargetOnePassword:
		return Schema{
			Target:  types.TargetOnePassword,
			Columns: []string{"title", "username", "password", "url", "notes"},
			row: func(rec types.SourceRecord, splitNotes bool) []string {
				notes := rec.Notes
				if splitNotes {
					notes = ""
				}
				return []string{rec.Title, rec.Username, rec.Password, rec.URL, notes}
			},
		}, nil
	default:
		return Schema{}, fmt.Errorf("%w: %q", types.ErrUnsupportedTarget, t)
	}
}
