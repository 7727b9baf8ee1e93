// Package logging provides the slog setup for conndiag: run identifiers,
// secret redaction, and handler selection.
package logging

import "github.com/oklog/ulid/v2"

// GenerateRunID generates a ULID for run identification. ULIDs sort by
// creation time, which keeps per-run log files listable in order.
func GenerateRunID() string {
	return ulid.Make().String()
}
