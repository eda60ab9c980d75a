// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SkipMissingPassword is the aggregate skip reason for login records whose
// password is empty after cleaning.
const SkipMissingPassword = "missing password"

// Result holds the outcome of one conversion run. It is produced once, after
// the run completes, and never mutated afterwards.
type Result struct {
	// Converted is the number of login records written to the main output.
	Converted int `json:"converted" yaml:"converted"`

	// Skipped is the number of login records excluded from all output.
	Skipped int `json:"skipped" yaml:"skipped"`

	// SkipReasons counts skipped records by reason.
	SkipReasons map[string]int `json:"skip_reasons,omitempty" yaml:"skip_reasons,omitempty"`

	// Notes is the number of secure-note records routed to the notes output.
	// Note records are never counted as converted or skipped.
	Notes int `json:"notes" yaml:"notes"`

	// PasswordsCleaned counts passwords altered by whitespace stripping.
	PasswordsCleaned int `json:"passwords_cleaned" yaml:"passwords_cleaned"`

	// OutputPath and NotesPath record where output was written, when the
	// caller converted to files rather than arbitrary sinks.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	NotesPath  string `json:"notes_path,omitempty" yaml:"notes_path,omitempty"`
}

// Total returns the number of source records processed.
func (r Result) Total() int {
	return r.Converted + r.Skipped + r.Notes
}

// HasSkips reports whether any records were excluded from output.
func (r Result) HasSkips() bool {
	return r.Skipped > 0
}
