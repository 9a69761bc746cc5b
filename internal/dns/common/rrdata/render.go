package rrdata

import (
	"encoding/hex"

	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// Render maps a record payload to a human-readable string based on the raw
// record type code.
func Render(rrtype uint16, data []byte) string {
	switch domain.RRType(rrtype) {
	case domain.RRTypeA: // 1
		return renderAData(data)
	case domain.RRTypeTXT: // 16
		return renderTXTData(data)
	case domain.RRTypeAAAA: // 28
		return renderAAAAData(data)
	default:
		return hex.EncodeToString(data)
	}
}

// Encode converts a presentation string into the payload bytes for the
// given record type. Types without a structured encoding store the raw
// string bytes.
func Encode(rrtype uint16, data string) ([]byte, error) {
	switch domain.RRType(rrtype) {
	case domain.RRTypeA:
		return EncodeAData(data)
	case domain.RRTypeTXT:
		return EncodeTXTData(data)
	case domain.RRTypeAAAA:
		return EncodeAAAAData(data)
	default:
		return []byte(data), nil
	}
}
