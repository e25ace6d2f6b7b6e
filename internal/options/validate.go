// Package options checks mutually exclusive inputs shared by the CLI and
// the MCP tools.
package options

import "errors"

// ExactlyOne returns an error carrying msg unless exactly one of set is true.
func ExactlyOne(msg string, set ...bool) error {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}
	if n != 1 {
		return errors.New(msg)
	}
	return nil
}
