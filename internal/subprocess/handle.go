package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tari-tools/universe-mcp-go/internal/errors"
)

// maxStderrBufferSize caps the stderr buffer. Stderr draining continues until
// the pipe closes, but the buffer stops growing after this limit to prevent
// unbounded memory usage.
const maxStderrBufferSize = 1 * 1024 * 1024 // 1MB

// Handle owns the operating-system child process and its three standard
// streams. Exactly one Handle exists per rpc client; it is never shared.
type Handle struct {
	log    *slog.Logger
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser

	eg *errgroup.Group

	stderrMu  sync.Mutex
	stderrBuf strings.Builder

	waitOnce sync.Once
	waitErr  error
}

// Start spawns the executable with the given arguments, wiring its standard
// streams to pipes owned by the returned Handle.
//
// Returns LaunchError if the process cannot be spawned.
func Start(ctx context.Context, log *slog.Logger, path string, args []string) (*Handle, error) {
	h := &Handle{
		log: log.With("component", "subprocess"),
	}

	//nolint:gosec // G204: spawning a caller-chosen server binary is the point
	cmd := exec.CommandContext(ctx, path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &errors.LaunchError{Path: path, Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &errors.LaunchError{Path: path, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &errors.LaunchError{Path: path, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		h.log.Error("Failed to start server process", "path", path, "error", err)

		return nil, &errors.LaunchError{Path: path, Err: err}
	}

	h.cmd = cmd
	h.stdin = stdin
	h.stdout = stdout

	// Drain stderr until the pipe closes. Reads must complete before Wait();
	// process kill closes the pipe and unblocks the scanner.
	h.eg, _ = errgroup.WithContext(context.Background())
	h.eg.Go(func() error {
		h.drainStderr(stderr)

		return nil
	})

	h.log.Info("Server process started", "path", path, "pid", cmd.Process.Pid)

	return h, nil
}

// drainStderr copies stderr into the capped buffer line by line.
func (h *Handle) drainStderr(stderr io.Reader) {
	buf := make([]byte, 4096)

	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			h.stderrMu.Lock()

			if h.stderrBuf.Len() < maxStderrBufferSize {
				h.stderrBuf.Write(buf[:n])
			}

			h.stderrMu.Unlock()
		}

		if err != nil {
			if err != io.EOF {
				h.log.Debug("Stderr drain stopped", "error", err)
			}

			return
		}
	}
}

// Stdin returns the writer connected to the child's standard input.
func (h *Handle) Stdin() io.Writer {
	return h.stdin
}

// Stdout returns the reader connected to the child's standard output.
func (h *Handle) Stdout() io.Reader {
	return h.stdout
}

// Stderr returns everything the child has written to stderr so far,
// trimmed of trailing whitespace.
func (h *Handle) Stderr() string {
	h.stderrMu.Lock()
	defer h.stderrMu.Unlock()

	return strings.TrimSpace(h.stderrBuf.String())
}

// Pid returns the child's process id.
func (h *Handle) Pid() int {
	return h.cmd.Process.Pid
}

// Terminate requests graceful termination and blocks until the child exits
// or the grace period elapses, after which it escalates to a forceful kill.
//
// Closing stdin signals end of input; the server's read loop exits and the
// process shuts down on its own in the normal case. SIGTERM covers servers
// that ignore a closed stdin.
func (h *Handle) Terminate(grace time.Duration) error {
	h.log.Debug("Terminating server process", "pid", h.cmd.Process.Pid, "grace", grace)

	_ = h.stdin.Close()
	_ = h.cmd.Process.Signal(syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		done <- h.wait()
	}()

	select {
	case err := <-done:
		h.log.Debug("Server process exited gracefully")

		return ignoreExitStatus(err)

	case <-time.After(grace):
		h.log.Warn("Grace period elapsed, killing server process", "pid", h.cmd.Process.Pid)

		if err := h.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("kill server process (pid %d): %w", h.cmd.Process.Pid, err)
		}

		return ignoreExitStatus(<-done)
	}
}

// ignoreExitStatus drops the exit-status error from a child we asked to
// terminate; any exit code is acceptable then.
func ignoreExitStatus(err error) error {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return nil
	}

	return err
}

// wait reaps the child exactly once, after the stderr drain finishes.
func (h *Handle) wait() error {
	h.waitOnce.Do(func() {
		_ = h.eg.Wait()
		h.waitErr = h.cmd.Wait()
	})

	return h.waitErr
}
