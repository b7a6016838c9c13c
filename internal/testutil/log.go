package testutil

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/specialistvlad/eqgen/internal/ctxlog"
)

// Context returns a context carrying a debug logger that writes into a
// buffer instead of stderr. The captured output is printed at the end of the
// test when EQGEN_TEST_LOGS=true.
func Context(t *testing.T) context.Context {
	t.Helper()

	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("EQGEN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger)
}
