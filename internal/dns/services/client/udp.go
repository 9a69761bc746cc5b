package client

import (
	"context"
	"time"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/domain"
	"github.com/kestrelns/kestrel/internal/dns/gateways/transport"
)

// UDPResolver resolves names over the UDP transport. All lookups from one
// instance share the transport's socket and are correlated by transaction ID.
type UDPResolver struct {
	client *transport.UDPClient
	logger log.Logger
}

// NewUDPResolver wraps an existing transport client.
func NewUDPResolver(tc *transport.UDPClient, logger log.Logger) *UDPResolver {
	return &UDPResolver{client: tc, logger: logger}
}

// LookupFull resolves name and returns the complete response message. A
// context deadline overrides the transport's default query timeout.
func (r *UDPResolver) LookupFull(ctx context.Context, name string, family string, rrtype domain.RRType) (domain.Message, error) {
	ascii, err := normalizeName(name)
	if err != nil {
		return domain.Message{}, err
	}
	q, err := domain.NewQuestion(ascii, pickType(family, rrtype))
	if err != nil {
		return domain.Message{}, err
	}
	var timeout time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	return r.client.Query(ctx, q, timeout)
}

// Lookup resolves name and returns the rendered matching answers.
func (r *UDPResolver) Lookup(ctx context.Context, name string, family string, rrtype domain.RRType) ([]string, error) {
	m, err := r.LookupFull(ctx, name, family, rrtype)
	if err != nil {
		return nil, err
	}
	return renderAnswers(m, pickType(family, rrtype)), nil
}

// Close releases the underlying transport socket.
func (r *UDPResolver) Close() error {
	return r.client.Close()
}

var _ Resolver = (*UDPResolver)(nil)
