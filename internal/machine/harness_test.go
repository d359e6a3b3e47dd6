package machine

import (
	"testing"

	"github.com/smoynes/wam/internal/log"
)

// NewTestHarness creates a Machine wired to a logger that writes through
// t.Log, so `go test -v` output interleaves machine tracing with test
// assertions in order.
func NewTestHarness(t *testing.T) *Machine {
	t.Helper()

	logger := log.NewFormattedLogger(&testWriter{T: t})

	return New(WithLogger(logger))
}

type testWriter struct{ *testing.T }

func (w *testWriter) Write(b []byte) (int, error) {
	w.T.Helper()

	n := len(b)
	if n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}

	w.T.Log(string(b))

	return n, nil
}
