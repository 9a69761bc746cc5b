package transport

import (
	"time"

	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// txResult is what a finished transaction delivers to its waiting caller.
type txResult struct {
	msg domain.Message
	err error
}

// transaction tracks one in-flight query from send to completion. Its
// lifecycle is pending -> resolved | timed-out | failed, transitioned
// exactly once: whichever event wins removes it from the outstanding set and
// writes the result slot; the loser is discarded silently.
type transaction struct {
	id      uint16
	host    string
	started time.Time
	timer   *time.Timer
	done    chan txResult // buffered(1), written exactly once
}

func newTransaction(id uint16, host string, started time.Time) *transaction {
	return &transaction{
		id:      id,
		host:    host,
		started: started,
		done:    make(chan txResult, 1),
	}
}
