package transport

import (
	"fmt"
	"time"
)

// BindError means the shared UDP socket could not be bound after exhausting
// the retry budget. It is fatal to the client instance.
type BindError struct {
	Attempts int
	Err      error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind UDP socket after %d attempts: %v", e.Attempts, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// TimeoutError means a query saw no matching response within its timeout.
// The transaction has already been removed; a late response is discarded.
type TimeoutError struct {
	Host    string
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("query for %s timed out after %v", e.Host, e.Elapsed)
}

// TransportError wraps a socket send or receive failure. It fails only the
// pending transaction it affects, never the client instance.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("udp %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
