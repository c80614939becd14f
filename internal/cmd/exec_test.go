package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/fw/internal/log"
)

type execFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

func runOnly(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return nil, RunContext(ctx, dir, name, args...)
}

func TestExec_ErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fn     execFunc
		script string
		want   string
	}{
		{"run uses stderr", runOnly, "echo 'fatal: not a git repository' >&2; exit 128", "fatal: not a git repository"},
		{"output uses stderr", OutputContext, "echo ignored; echo 'bad ref' >&2; exit 1", "bad ref"},
		{"output falls back to exit status", OutputContext, "exit 3", "exit status 3"},
		{"combined keeps both streams", CombinedContext, "echo 'CONFLICT (content): x'; echo 'fatal: merge' >&2; exit 1", "CONFLICT (content): x\nfatal: merge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.fn(context.Background(), "", "sh", "-c", tt.script)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestExec_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, RunContext(context.Background(), dir, "true"))

	out, err := OutputContext(context.Background(), dir, "sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", string(out))

	out, err = CombinedContext(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, string(out), filepath.Base(dir))
}

func TestExec_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, fn := range map[string]execFunc{"run": runOnly, "output": OutputContext, "combined": CombinedContext} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := fn(ctx, "", "sleep", "10")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestExec_TracesCommandWhenVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	dir := t.TempDir()

	_, err := OutputContext(ctx, dir, "echo", "hi")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "$ echo hi")
	assert.Contains(t, buf.String(), "dir="+dir)
}
