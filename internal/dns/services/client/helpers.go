package client

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"

	"github.com/kestrelns/kestrel/internal/dns/common/rrdata"
	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// normalizeName IDNA-normalizes a lookup name before it goes on the wire,
// so internationalized names become their punycode ASCII form.
func normalizeName(name string) (string, error) {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(name, "."))
	if err != nil {
		return "", fmt.Errorf("invalid lookup name %q: %w", name, err)
	}
	return ascii, nil
}

// pickType resolves the record type for a lookup: an explicit type wins,
// otherwise the address-family hint selects A or AAAA.
func pickType(family string, rrtype domain.RRType) domain.RRType {
	if rrtype != 0 {
		return rrtype
	}
	switch family {
	case FamilyIPv6, "udp6", "6":
		return domain.RRTypeAAAA
	default:
		return domain.RRTypeA
	}
}

// renderAnswers extracts the answers of the queried type as presentation
// strings.
func renderAnswers(m domain.Message, qtype domain.RRType) []string {
	var out []string
	for _, rr := range m.AnswersOfType(qtype) {
		out = append(out, rrdata.Render(rr.Type, rr.Data))
	}
	return out
}
