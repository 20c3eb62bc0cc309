// Package scoringerr defines the structured failure types the scoring core
// reports. Callers distinguish a misconfigured round (ConfigError) from a
// round that cannot be scored yet (PreconditionError); missing per-hole
// scores are never errors; those holes are simply skipped.
package scoringerr

import "fmt"

// ConfigError reports a required configuration field that is missing or
// invalid. Numeric domain defaults (slope 113, par 4) are applied silently
// and never produce a ConfigError.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid round config: %s: %s", e.Field, e.Reason)
}

// PreconditionError reports input that is structurally insufficient for the
// requested computation, e.g. match play without exactly two players. It is
// distinct from a zero-result success such as an all-square match.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %s", e.Op, e.Reason)
}
