// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds the defaults applied by the convert command when flags
// are not given. Loaded from passmigrate.yaml or PASSMIGRATE_* environment
// variables.
type ConvertConfig struct {
	// Target is the default output format: proton, lastpass, or 1password.
	Target string `json:"target" yaml:"target" mapstructure:"target"`

	// VaultName is the default Proton Pass vault name.
	VaultName string `json:"vault_name" yaml:"vault_name" mapstructure:"vault_name"`

	// SplitNotes controls whether notes are exported to a separate file.
	SplitNotes bool `json:"split_notes" yaml:"split_notes" mapstructure:"split_notes"`

	// ProgressEvery is the record interval between progress lines (default 10).
	ProgressEvery int `json:"progress_every" yaml:"progress_every" mapstructure:"progress_every"`
}

// LogConfig holds settings for CLI logging.
type LogConfig struct {
	// Level is the zerolog level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// JSON emits structured JSON instead of console output.
	JSON bool `json:"json" yaml:"json" mapstructure:"json"`
}

// Config groups all tool configuration.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
