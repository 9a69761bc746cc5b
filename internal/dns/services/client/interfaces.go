// Package client exposes the caller-facing lookup interface and its
// implementations: UDP (the wire transport), DNS-over-HTTPS (JSON), and the
// operating system's resolver. The implementation is selected at
// construction time; callers only see the Resolver capability surface.
package client

import (
	"context"

	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// Address-family hints accepted by Lookup and LookupFull. The hint only
// matters when no explicit record type is given: it picks A vs AAAA.
const (
	FamilyIPv4 = "ip4"
	FamilyIPv6 = "ip6"
)

// Resolver is the capability surface shared by every client implementation.
// Both operations honor context cancellation and deadlines; a context
// deadline acts as the per-call timeout override.
type Resolver interface {
	// Lookup resolves name and returns the rendered data of the answers
	// matching the queried type, in response order.
	Lookup(ctx context.Context, name string, family string, rrtype domain.RRType) ([]string, error)

	// LookupFull resolves name and returns the complete response message.
	LookupFull(ctx context.Context, name string, family string, rrtype domain.RRType) (domain.Message, error)
}
