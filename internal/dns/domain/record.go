package domain

// ResourceRecord represents one DNS resource record as it appears in the
// answer, authority, or additional section of a message.
//
// Type and Class are the raw 16-bit wire codes rather than the RRType and
// RRClass enums: records of types this library does not know about must
// round-trip through decode and encode unchanged. Data is the opaque RDATA
// payload; its interpretation depends on Type (see common/rrdata).
type ResourceRecord struct {
	Name  Name
	Type  uint16
	Class uint16
	TTL   uint32
	Data  []byte
}

// NewOPTRecord builds the EDNS(0) OPT pseudo-record for the additional
// section. Per RFC 6891 the fields are repurposed: the name is the root, the
// class carries the advertised UDP payload size, and the TTL carries the
// extended flags (zero when unused). The payload is empty for basic usage.
func NewOPTRecord(payloadSize uint16) ResourceRecord {
	return ResourceRecord{
		Name:  Name{},
		Type:  uint16(RRTypeOPT),
		Class: payloadSize,
	}
}

// IsOPT reports whether the record is the EDNS(0) pseudo-record.
func (rr ResourceRecord) IsOPT() bool {
	return rr.Type == uint16(RRTypeOPT)
}
