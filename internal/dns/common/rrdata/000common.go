// Package rrdata converts between record payload bytes and their
// human-readable presentation for the common record types. Rendering never
// fails: malformed payloads produce an explicit "invalid" marker and unknown
// types fall back to a hex dump.
package rrdata

import "net"

// isIPv4 checks whether the provided net.IP address is an IPv4 address.
func isIPv4(ip net.IP) bool {
	return ip != nil && ip.To4() != nil
}

// isIPv6 checks whether the provided net.IP is a valid IPv6 address.
func isIPv6(ip net.IP) bool {
	return ip != nil && ip.To16() != nil && ip.To4() == nil
}
