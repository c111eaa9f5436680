package subprocess

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tari-tools/universe-mcp-go/internal/errors"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requireUnix(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
}

func TestStartUnknownBinary(t *testing.T) {
	_, err := Start(context.Background(), nopLogger(), "/nonexistent/tari-universe", nil)

	var launch *errors.LaunchError
	require.ErrorAs(t, err, &launch)
	require.Equal(t, "/nonexistent/tari-universe", launch.Path)
}

func TestStdioRoundTrip(t *testing.T) {
	requireUnix(t)

	h, err := Start(context.Background(), nopLogger(), "cat", nil)
	require.NoError(t, err)
	defer h.Terminate(time.Second)

	_, err = fmt.Fprintln(h.Stdin(), "hello over the pipe")
	require.NoError(t, err)

	line, err := bufio.NewReader(h.Stdout()).ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "hello over the pipe\n", line)

	require.Positive(t, h.Pid())
}

func TestStderrIsCaptured(t *testing.T) {
	requireUnix(t)

	h, err := Start(context.Background(), nopLogger(), "sh",
		[]string{"-c", "echo wallet init failed >&2; exit 1"})
	require.NoError(t, err)

	require.NoError(t, h.Terminate(2*time.Second))
	require.Contains(t, h.Stderr(), "wallet init failed")
}

func TestTerminateClosesStdinFirst(t *testing.T) {
	requireUnix(t)

	// cat exits on its own once stdin closes.
	h, err := Start(context.Background(), nopLogger(), "cat", nil)
	require.NoError(t, err)

	require.NoError(t, h.Terminate(2*time.Second))
}

func TestTerminateEscalatesToKill(t *testing.T) {
	requireUnix(t)

	// The child ignores SIGTERM, forcing the kill path.
	h, err := Start(context.Background(), nopLogger(), "sh",
		[]string{"-c", "trap '' TERM; while true; do sleep 1; done"})
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, h.Terminate(200*time.Millisecond))
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestTerminateUnblocksStdoutReader(t *testing.T) {
	requireUnix(t)

	h, err := Start(context.Background(), nopLogger(), "sh",
		[]string{"-c", "read line; sleep 60"})
	require.NoError(t, err)

	readDone := make(chan error, 1)

	go func() {
		_, err := h.Stdout().Read(make([]byte, 1))
		readDone <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, h.Terminate(100*time.Millisecond))

	select {
	case err := <-readDone:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stdout read did not unblock after Terminate")
	}
}
