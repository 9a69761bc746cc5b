package client

import (
	"context"
	"fmt"
	"net"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// systemTTL is the placeholder TTL on synthesized records: the platform
// resolver does not expose the real one.
const systemTTL = 0

// SystemResolver delegates lookups to the operating system's resolver. Only
// the types net.Resolver can answer are supported: A, AAAA, TXT, and CNAME.
type SystemResolver struct {
	resolver *net.Resolver
	logger   log.Logger
}

// NewSystemResolver returns a resolver backed by net.DefaultResolver.
func NewSystemResolver(logger log.Logger) *SystemResolver {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &SystemResolver{resolver: net.DefaultResolver, logger: logger}
}

// Lookup resolves name through the platform resolver.
func (r *SystemResolver) Lookup(ctx context.Context, name string, family string, rrtype domain.RRType) ([]string, error) {
	ascii, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	qtype := pickType(family, rrtype)
	switch qtype {
	case domain.RRTypeA:
		return r.lookupIP(ctx, "ip4", ascii)
	case domain.RRTypeAAAA:
		return r.lookupIP(ctx, "ip6", ascii)
	case domain.RRTypeTXT:
		return r.resolver.LookupTXT(ctx, ascii)
	case domain.RRTypeCNAME:
		cname, err := r.resolver.LookupCNAME(ctx, ascii)
		if err != nil {
			return nil, err
		}
		return []string{cname}, nil
	default:
		return nil, fmt.Errorf("system resolver does not support %s lookups", qtype)
	}
}

// LookupFull synthesizes a response-shaped message from the platform
// resolver's answers. Header flags beyond QR are not reconstructable and are
// left zero; TTLs are unknown and reported as zero.
func (r *SystemResolver) LookupFull(ctx context.Context, name string, family string, rrtype domain.RRType) (domain.Message, error) {
	ascii, err := normalizeName(name)
	if err != nil {
		return domain.Message{}, err
	}
	qtype := pickType(family, rrtype)
	answers, err := r.Lookup(ctx, ascii, family, qtype)
	if err != nil {
		return domain.Message{}, err
	}

	q, err := domain.NewQuestion(ascii, qtype)
	if err != nil {
		return domain.Message{}, err
	}
	m := domain.Message{Questions: []domain.Question{q}}
	m.Flags.SetResponse(true)
	for _, a := range answers {
		m.Answers = append(m.Answers, synthesizeRecord(q.Name, qtype, a))
	}
	return m, nil
}

func (r *SystemResolver) lookupIP(ctx context.Context, network, host string) ([]string, error) {
	ips, err := r.resolver.LookupIP(ctx, network, host)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		out = append(out, ip.String())
	}
	return out, nil
}

// synthesizeRecord converts one rendered answer string back into record form.
func synthesizeRecord(name domain.Name, qtype domain.RRType, data string) domain.ResourceRecord {
	var payload []byte
	switch qtype {
	case domain.RRTypeA:
		payload = net.ParseIP(data).To4()
	case domain.RRTypeAAAA:
		payload = net.ParseIP(data).To16()
	default:
		payload = []byte(data)
	}
	return domain.ResourceRecord{
		Name:  name,
		Type:  uint16(qtype),
		Class: uint16(domain.RRClassIN),
		TTL:   systemTTL,
		Data:  payload,
	}
}

var _ Resolver = (*SystemResolver)(nil)
