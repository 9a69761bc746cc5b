package rrdata

import (
	"fmt"
	"net"
)

// EncodeAAAAData encodes an AAAA record string into its 16-byte binary representation.
func EncodeAAAAData(data string) ([]byte, error) {
	// data = "2001:db8::ff00:42:8329"
	ip := net.ParseIP(data)
	if ip == nil || !isIPv6(ip) {
		return nil, fmt.Errorf("invalid AAAA record IP: %s", data)
	}
	return ip.To16(), nil
}

// renderAAAAData renders a 16-byte AAAA payload in IPv6 textual form.
func renderAAAAData(data []byte) string {
	if len(data) != net.IPv6len {
		return fmt.Sprintf("invalid AAAA record data (%d bytes)", len(data))
	}
	return net.IP(data).String()
}
