// Package logctx holds the small pieces of structured-logging plumbing
// shared by simplify, negate, and combine when a caller opts into tracing
// an expensive pass. The core engine never logs on its own — these helpers
// only fire when a *logrus.Entry is injected via an Option.
package logctx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discard returns a logger that writes nowhere, used as the zero-value
// default so call sites never need a nil check.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Stage returns a field set identifying the pass and input size, used
// consistently across simplify/negate/combine's debug logging.
func Stage(pkg, stage string, n int) logrus.Fields {
	return logrus.Fields{
		"pkg":     pkg,
		"stage":   stage,
		"clauses": n,
	}
}
