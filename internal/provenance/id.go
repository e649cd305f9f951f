// Package provenance generates distinguishing ids for clauses synthesized
// by the engine itself (wedge clauses created when a negation or
// combination exhausts all information), rather than clauses that trace
// back to a real conditional in source.
package provenance

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// NewID returns a collision-resistant int64 suitable for tagging a
// synthesized wedge clause. Its only purpose is to let two otherwise
// identical wedges be told apart for provenance; a monotonic counter would
// serve equally well, but a random id avoids needing any shared mutable
// counter state, which keeps the engine's functions side-effect-free.
func NewID() int64 {
	u := uuid.New()
	return int64(binary.BigEndian.Uint64(u[:8]) &^ (1 << 63))
}
