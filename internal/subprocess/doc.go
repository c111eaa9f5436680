// Package subprocess owns the Tari Universe server child process.
//
// A Handle wires the child's stdin, stdout, and stderr to pipes owned by the
// caller, drains stderr into a capped buffer for error reporting, and
// implements the terminate-and-wait half of the process lifecycle: a
// graceful termination request followed by a forceful kill once a bounded
// grace period elapses.
package subprocess
