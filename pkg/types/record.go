// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the domain types shared between the record reader, the
// format converter, and the CLI surface.
package types

// RecordKind distinguishes login entries from secure-note entries in a
// TrueKey export.
type RecordKind string

const (
	KindLogin RecordKind = "login"
	KindNote  RecordKind = "note"
)

// SourceRecord is one logical entry from a TrueKey export, regardless of how
// many physical lines of the source file it spanned.
type SourceRecord struct {
	// Kind marks the entry as a login or a secure note.
	Kind RecordKind `json:"kind" yaml:"kind"`

	// Title is the display name of the entry.
	Title string `json:"title" yaml:"title"`

	// URL is the site address associated with a login.
	URL string `json:"url" yaml:"url"`

	// Username is the login identifier (TrueKey calls this "login").
	Username string `json:"username" yaml:"username"`

	// Password is the secret; a login record without one is not convertible.
	Password string `json:"password" yaml:"password"`

	// Notes is free-form text and may contain embedded line breaks.
	Notes string `json:"notes" yaml:"notes"`

	// OTPSecret is the TOTP seed, when the export carries one.
	OTPSecret string `json:"otp_secret,omitempty" yaml:"otp_secret,omitempty"`
}

// IsNote reports whether the record is a secure note rather than a login.
func (r SourceRecord) IsNote() bool {
	return r.Kind == KindNote
}
