// Package options holds validation shared by the functional options of
// the parser, bundler and MCP input handling.
package options

import "github.com/oasdocs/oasdocs/oaserrors"

// CountSet returns how many of sources are true.
func CountSet(sources ...bool) int {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	return n
}

// ValidateSingleInputSource reports a *oaserrors.ConfigError for the
// "input" option unless exactly one of sources is set. noSourceMsg and
// multiSourceMsg become the error message for zero and several sources.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	switch n := CountSet(sources...); {
	case n == 0:
		return &oaserrors.ConfigError{Option: "input", Message: noSourceMsg}
	case n > 1:
		return &oaserrors.ConfigError{Option: "input", Value: n, Message: multiSourceMsg}
	}
	return nil
}
