// Package transport owns the UDP socket and the outstanding-transaction
// registry: it sends encoded queries to one remote server and matches
// inbound datagrams to pending transactions by ID.
package transport

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"sync"
	"time"

	"github.com/kestrelns/kestrel/internal/dns/common/clock"
	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/domain"
	"github.com/kestrelns/kestrel/internal/dns/gateways/wire"
)

const (
	// DefaultTimeout bounds a query when the caller does not override it.
	DefaultTimeout = 5 * time.Second

	// DefaultPayloadSize is the UDP payload size advertised via EDNS(0).
	DefaultPayloadSize = 4096

	maxBindAttempts = 5
	maxIDAttempts   = 32

	// ephemeral port range tried when the preferred local port is taken
	ephemeralPortMin = 49152
	ephemeralPortMax = 65535
)

// UDPClient issues DNS queries over a single lazily bound UDP socket shared
// by all queries from this instance. Concurrent lookups are distinguished
// solely by transaction ID; responses may arrive in any order.
type UDPClient struct {
	remote      *net.UDPAddr
	codec       wire.Codec
	logger      log.Logger
	clock       clock.Clock
	timeout     time.Duration
	payloadSize uint16
	localPort   int

	mu      sync.Mutex
	conn    *net.UDPConn
	pending map[uint16]*transaction
	closed  bool
}

// Options configures a UDPClient. Server is required; everything else has a
// sensible default.
type Options struct {
	Server      string // remote resolver, "host:port"
	Codec       wire.Codec
	Logger      log.Logger
	Clock       clock.Clock
	Timeout     time.Duration
	PayloadSize uint16
	LocalPort   int // 0 = OS-assigned ephemeral port
}

// NewUDPClient validates opts and returns a client. The socket is not bound
// until the first query.
func NewUDPClient(opts Options) (*UDPClient, error) {
	if opts.Server == "" {
		return nil, fmt.Errorf("no DNS server address provided")
	}
	remote, err := net.ResolveUDPAddr("udp", opts.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server address %s: %w", opts.Server, err)
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Codec == nil {
		opts.Codec = wire.NewCodec(opts.Logger)
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PayloadSize == 0 {
		opts.PayloadSize = DefaultPayloadSize
	}
	return &UDPClient{
		remote:      remote,
		codec:       opts.Codec,
		logger:      opts.Logger,
		clock:       opts.Clock,
		timeout:     opts.Timeout,
		payloadSize: opts.PayloadSize,
		localPort:   opts.LocalPort,
	}, nil
}

// Query sends a single-question recursive query and waits for the matching
// response, a timeout, or a transport failure. A non-positive timeout uses
// the client default. The context only bounds the caller's wait; the
// transaction's own lifecycle is governed by its timer.
func (c *UDPClient) Query(ctx context.Context, q domain.Question, timeout time.Duration) (domain.Message, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	conn, err := c.ensureConn()
	if err != nil {
		return domain.Message{}, err
	}

	c.mu.Lock()
	if c.pending == nil {
		c.pending = make(map[uint16]*transaction)
	}
	id, err := c.newIDLocked()
	if err != nil {
		c.mu.Unlock()
		return domain.Message{}, err
	}
	tx := newTransaction(id, q.Name.String(), c.clock.Now())
	c.pending[id] = tx
	tx.timer = time.AfterFunc(timeout, func() { c.expire(tx) })
	c.mu.Unlock()

	msg := domain.NewQueryMessage(id, q, c.payloadSize)
	data, err := c.codec.EncodeMessage(msg)
	if err != nil {
		c.abandon(tx)
		return domain.Message{}, err
	}

	if _, err := conn.WriteToUDP(data, c.remote); err != nil {
		c.fail(tx, &TransportError{Op: "send", Err: err})
	} else {
		c.logger.Debug(map[string]any{
			"id":     id,
			"host":   tx.host,
			"server": c.remote.String(),
			"size":   len(data),
		}, "Sent DNS query")
	}

	select {
	case res := <-tx.done:
		return res.msg, res.err
	case <-ctx.Done():
		c.abandon(tx)
		return domain.Message{}, ctx.Err()
	}
}

// Close shuts down the socket and fails every outstanding transaction.
func (c *UDPClient) Close() error {
	c.mu.Lock()
	c.closed = true
	conn := c.conn
	c.conn = nil
	orphans := make([]*transaction, 0, len(c.pending))
	for _, tx := range c.pending {
		orphans = append(orphans, tx)
	}
	c.pending = nil
	c.mu.Unlock()

	for _, tx := range orphans {
		tx.timer.Stop()
		tx.done <- txResult{err: &TransportError{Op: "query", Err: net.ErrClosed}}
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// outstanding reports the number of in-flight transactions.
func (c *UDPClient) outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// ensureConn lazily binds the shared socket and starts the receive loop on
// first use. A failed bind is retried with randomly chosen ephemeral ports
// before giving up with a BindError.
func (c *UDPClient) ensureConn() (*net.UDPConn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, &TransportError{Op: "bind", Err: net.ErrClosed}
	}
	if c.conn != nil {
		return c.conn, nil
	}

	var lastErr error
	port := c.localPort
	for attempt := 0; attempt < maxBindAttempts; attempt++ {
		conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
		if err == nil {
			c.conn = conn
			go c.readLoop(conn)
			c.logger.Debug(map[string]any{
				"local":  conn.LocalAddr().String(),
				"server": c.remote.String(),
			}, "UDP socket bound")
			return conn, nil
		}
		lastErr = err
		c.logger.Warn(map[string]any{
			"port":    port,
			"attempt": attempt + 1,
			"error":   err.Error(),
		}, "Failed to bind UDP socket, retrying")
		port = ephemeralPortMin + rand.IntN(ephemeralPortMax-ephemeralPortMin+1)
	}
	return nil, &BindError{Attempts: maxBindAttempts, Err: lastErr}
}

// newIDLocked picks a pseudo-random 16-bit transaction ID that does not
// collide with an outstanding one. Caller holds mu.
func (c *UDPClient) newIDLocked() (uint16, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := uint16(rand.Uint32())
		if _, busy := c.pending[id]; !busy {
			return id, nil
		}
	}
	return 0, fmt.Errorf("no free transaction ID after %d attempts", maxIDAttempts)
}

// readLoop receives datagrams for the life of the socket. Read errors after
// Close terminate the loop; anything else is logged and skipped.
func (c *UDPClient) readLoop(conn *net.UDPConn) {
	buf := make([]byte, c.payloadSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			c.mu.Lock()
			closed := c.closed || c.conn != conn
			c.mu.Unlock()
			if closed {
				return
			}
			c.logger.Warn(map[string]any{"error": err.Error()}, "Failed to read UDP datagram")
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		c.dispatch(data)
	}
}

// dispatch decodes one inbound datagram and resolves the matching pending
// transaction. Malformed datagrams are contained here: they are logged and
// dropped without touching any outstanding transaction.
func (c *UDPClient) dispatch(data []byte) {
	m, err := c.codec.DecodeMessage(data)
	if err != nil {
		c.logger.Warn(map[string]any{
			"error": err.Error(),
			"size":  len(data),
		}, "Dropping undecodable datagram")
		return
	}

	c.mu.Lock()
	tx, ok := c.pending[m.ID]
	c.mu.Unlock()
	if !ok {
		c.logger.Debug(map[string]any{"id": m.ID}, "No outstanding transaction for response")
		return
	}

	if m.Flags.Truncated() {
		// no TCP fallback: the truncated response is resolved as-is
		c.logger.Warn(map[string]any{
			"id":   m.ID,
			"host": tx.host,
		}, "Response truncated, resolving as-is")
	}

	if c.complete(tx, txResult{msg: m}) {
		c.logger.Debug(map[string]any{
			"id":      m.ID,
			"host":    tx.host,
			"rcode":   m.Flags.RCode().String(),
			"answers": len(m.Answers),
		}, "Resolved DNS query")
	}
}

// complete finalizes tx exactly once: it removes tx from the outstanding set
// and writes the result slot. Returns false when tx already finished, in
// which case res is discarded (the caller lost the race).
func (c *UDPClient) complete(tx *transaction, res txResult) bool {
	c.mu.Lock()
	cur, ok := c.pending[tx.id]
	if !ok || cur != tx {
		c.mu.Unlock()
		return false
	}
	delete(c.pending, tx.id)
	c.mu.Unlock()

	tx.timer.Stop()
	tx.done <- res
	return true
}

// expire fires when a transaction's timer wins the race against its response.
func (c *UDPClient) expire(tx *transaction) {
	elapsed := c.clock.Now().Sub(tx.started)
	if c.complete(tx, txResult{err: &TimeoutError{Host: tx.host, Elapsed: elapsed}}) {
		c.logger.Debug(map[string]any{
			"id":      tx.id,
			"host":    tx.host,
			"elapsed": elapsed.String(),
		}, "Query timed out")
	}
}

// fail finalizes tx with a transport error.
func (c *UDPClient) fail(tx *transaction, err error) {
	c.complete(tx, txResult{err: err})
}

// abandon removes tx without delivering a result; used when the caller has
// stopped waiting.
func (c *UDPClient) abandon(tx *transaction) {
	c.complete(tx, txResult{})
}
