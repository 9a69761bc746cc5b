package rrdata

import (
	"fmt"
	"net"
)

// EncodeAData encodes an A record string into its 4-byte binary representation.
func EncodeAData(data string) ([]byte, error) {
	// data = "192.168.0.1"
	ip := net.ParseIP(data)
	if ip == nil || !isIPv4(ip) {
		return nil, fmt.Errorf("invalid A record IP: %s", data)
	}
	return ip.To4(), nil
}

// renderAData renders a 4-byte A payload as a dotted quad.
func renderAData(data []byte) string {
	if len(data) != net.IPv4len {
		return fmt.Sprintf("invalid A record data (%d bytes)", len(data))
	}
	return net.IP(data).String()
}
