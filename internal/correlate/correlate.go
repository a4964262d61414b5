// Package correlate derives short, stable correlation tags for log lines so
// every message belonging to the same committee run can be grepped together.
package correlate

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Tag hashes label (a committee/round description) down to a short hex
// fingerprint. It is not a security primitive, just a grep-friendly label:
// collisions are harmless, they only merge two runs' log lines.
func Tag(label string) string {
	sum := blake3.Sum256([]byte(label))
	return hex.EncodeToString(sum[:4])
}

// Session derives a run-scoped tag from the parties and x* of one
// interpolation, so every committee and round it spawns can share a prefix.
func Session(n int, xStar fmt.Stringer) string {
	return Tag(fmt.Sprintf("session:n=%d:xstar=%s", n, xStar.String()))
}
