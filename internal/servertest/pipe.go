package servertest

import (
	"io"
	"sync"
	"time"
)

// Conn wires a fake server to in-memory pipes shaped like the real server
// process: the client writes requests to Stdin and reads responses from
// Stdout. Terminate severs both pipes, which unblocks pending reads the
// same way reaping the real process does.
type Conn struct {
	stdinW  *io.PipeWriter
	stdoutR *io.PipeReader

	stderr string

	done chan struct{}
	once sync.Once

	mu       sync.Mutex
	serveErr error
}

// StartConn runs Serve over in-memory pipes.
func StartConn(cfg Config) *Conn {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	c := &Conn{
		stdinW:  inW,
		stdoutR: outR,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(c.done)

		err := Serve(inR, outW, cfg)

		c.mu.Lock()
		c.serveErr = err
		c.mu.Unlock()

		_ = outW.Close()
	}()

	return c
}

// Stdin returns the writer the client sends requests on.
func (c *Conn) Stdin() io.Writer {
	return c.stdinW
}

// Stdout returns the reader the client receives responses on.
func (c *Conn) Stdout() io.Reader {
	return c.stdoutR
}

// Stderr returns the configured stderr text.
func (c *Conn) Stderr() string {
	return c.stderr
}

// SetStderr sets the text Stderr reports, standing in for captured process
// output.
func (c *Conn) SetStderr(s string) {
	c.stderr = s
}

// Terminate closes both pipes and waits for the serve loop to exit.
func (c *Conn) Terminate(grace time.Duration) error {
	c.once.Do(func() {
		_ = c.stdinW.Close()
		_ = c.stdoutR.Close()

		select {
		case <-c.done:
		case <-time.After(grace):
		}
	})

	return nil
}

// ServeErr reports how the serve loop ended. Valid after Terminate.
func (c *Conn) ServeErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.serveErr
}
