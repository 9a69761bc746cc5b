package domain

import "fmt"

// Opcode represents the 4-bit kind-of-query field in the message header.
type Opcode uint8

// DNS Opcode constants
const (
	OpcodeQuery  Opcode = 0 // QUERY - standard query
	OpcodeIQuery Opcode = 1 // IQUERY - inverse query (obsolete)
	OpcodeStatus Opcode = 2 // STATUS - server status request
	OpcodeNotify Opcode = 4 // NOTIFY - zone change notification
	OpcodeUpdate Opcode = 5 // UPDATE - dynamic update
)

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	case OpcodeNotify:
		return "NOTIFY"
	case OpcodeUpdate:
		return "UPDATE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
	}
}
