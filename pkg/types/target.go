// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// Target identifies the destination password manager's CSV dialect.
type Target string

const (
	TargetProton      Target = "proton"
	TargetLastPass    Target = "lastpass"
	TargetOnePassword Target = "1password"
)

// DefaultVaultName is the Proton Pass vault entries are assigned to when the
// user has not chosen one.
const DefaultVaultName = "Personal"

// ErrUnsupportedTarget is returned for a target selector outside the known
// set. Wrapped errors carry the offending value.
var ErrUnsupportedTarget = errors.New("unsupported target format")

// ParseTarget normalizes a user-supplied target selector. Common spellings
// ("protonpass", "1Password", "onepassword") are accepted.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "proton", "protonpass", "proton-pass":
		return TargetProton, nil
	case "lastpass", "last-pass":
		return TargetLastPass, nil
	case "1password", "onepassword", "one-password":
		return TargetOnePassword, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTarget, s)
	}
}

// Options configures one conversion run. All state is scoped to a single
// invocation; two runs with separate Options never interfere.
type Options struct {
	// Target selects the output schema.
	Target Target `json:"target" yaml:"target"`

	// VaultName is the Proton Pass vault column value. Ignored by other
	// targets; DefaultVaultName is used when blank.
	VaultName string `json:"vault_name" yaml:"vault_name"`

	// SplitNotes omits notes from the main output and routes them, one row
	// per converted record, to a separate notes file.
	SplitNotes bool `json:"split_notes" yaml:"split_notes"`

	// ProgressEvery is the record interval between progress lines. Zero
	// means the default of 10.
	ProgressEvery int `json:"progress_every,omitempty" yaml:"progress_every,omitempty"`
}

// Vault returns the effective vault name for Proton Pass output.
func (o Options) Vault() string {
	if o.VaultName == "" {
		return DefaultVaultName
	}
	return o.VaultName
}
