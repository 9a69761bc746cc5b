package domain

// Flags is the packed 16-bit header word of a DNS message. All header bits
// other than the transaction ID and the section counts live here, accessed
// through getter/setter pairs over named masks.
//
// Bit layout (bit 15 is the most significant):
//
//	offset  width  meaning
//	15      1      QR: 0 query, 1 response
//	11      4      Opcode
//	10      1      AA: authoritative answer
//	9       1      TC: truncated
//	8       1      RD: recursion desired
//	7       1      RA: recursion available
//	4       3      Z: reserved, zero
//	0       4      RCode
type Flags uint16

const (
	flagQR uint16 = 1 << 15
	flagAA uint16 = 1 << 10
	flagTC uint16 = 1 << 9
	flagRD uint16 = 1 << 8
	flagRA uint16 = 1 << 7

	opcodeShift = 11
	opcodeMask  uint16 = 0xF << opcodeShift
	rcodeMask   uint16 = 0xF
)

func (f Flags) bit(mask uint16) bool {
	return uint16(f)&mask != 0
}

func (f *Flags) setBit(mask uint16, v bool) {
	if v {
		*f |= Flags(mask)
	} else {
		*f &^= Flags(mask)
	}
}

// Response reports the QR bit: true for responses, false for queries.
func (f Flags) Response() bool { return f.bit(flagQR) }

// SetResponse sets or clears the QR bit.
func (f *Flags) SetResponse(v bool) { f.setBit(flagQR, v) }

// Authoritative reports the AA bit.
func (f Flags) Authoritative() bool { return f.bit(flagAA) }

// SetAuthoritative sets or clears the AA bit.
func (f *Flags) SetAuthoritative(v bool) { f.setBit(flagAA, v) }

// Truncated reports the TC bit.
func (f Flags) Truncated() bool { return f.bit(flagTC) }

// SetTruncated sets or clears the TC bit.
func (f *Flags) SetTruncated(v bool) { f.setBit(flagTC, v) }

// RecursionDesired reports the RD bit.
func (f Flags) RecursionDesired() bool { return f.bit(flagRD) }

// SetRecursionDesired sets or clears the RD bit.
func (f *Flags) SetRecursionDesired(v bool) { f.setBit(flagRD, v) }

// RecursionAvailable reports the RA bit.
func (f Flags) RecursionAvailable() bool { return f.bit(flagRA) }

// SetRecursionAvailable sets or clears the RA bit.
func (f *Flags) SetRecursionAvailable(v bool) { f.setBit(flagRA, v) }

// Opcode extracts the 4-bit opcode field.
func (f Flags) Opcode() Opcode {
	return Opcode(uint16(f) >> opcodeShift & 0xF)
}

// SetOpcode replaces the 4-bit opcode field, leaving all other bits intact.
func (f *Flags) SetOpcode(op Opcode) {
	*f = Flags(uint16(*f)&^opcodeMask | uint16(op)<<opcodeShift&opcodeMask)
}

// RCode extracts the 4-bit response code field.
func (f Flags) RCode() RCode {
	return RCode(uint16(f) & rcodeMask)
}

// SetRCode replaces the 4-bit response code field, leaving all other bits
// intact.
func (f *Flags) SetRCode(rc RCode) {
	*f = Flags(uint16(*f)&^rcodeMask | uint16(rc)&rcodeMask)
}
