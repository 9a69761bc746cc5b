package rrdata

import (
	"fmt"
	"strings"
)

// EncodeTXTData encodes a TXT record string into length-prefixed segments.
// Multiple strings are separated by semicolons, see RFC 1035 section 3.3.14.
func EncodeTXTData(data string) ([]byte, error) {
	segments := strings.Split(data, ";")
	var encoded []byte
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if len(segment) > 255 {
			return nil, fmt.Errorf("TXT segment too long: %d bytes", len(segment))
		}
		encoded = append(encoded, byte(len(segment)))
		encoded = append(encoded, []byte(segment)...)
	}
	if len(encoded) == 0 {
		return nil, fmt.Errorf("TXT record must contain at least one segment")
	}
	return encoded, nil
}

// renderTXTData concatenates the length-prefixed segments of a TXT payload.
func renderTXTData(data []byte) string {
	var sb strings.Builder
	for i := 0; i < len(data); {
		n := int(data[i])
		i++
		if i+n > len(data) {
			return fmt.Sprintf("invalid TXT record data (%d bytes)", len(data))
		}
		sb.Write(data[i : i+n])
		i += n
	}
	return sb.String()
}
