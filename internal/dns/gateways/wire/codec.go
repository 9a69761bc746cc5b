package wire

import (
	"errors"

	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// Codec encodes and decodes complete DNS messages. Implementations are
// stateless across calls; the compression table used while encoding is
// scoped to a single EncodeMessage call and never reused.
type Codec interface {
	EncodeMessage(m domain.Message) ([]byte, error)
	DecodeMessage(data []byte) (domain.Message, error)
}

// Decode failures wrap one of these sentinels so callers can distinguish a
// malformed datagram from their own encode-time mistakes.
var (
	// ErrMessageTooShort means the buffer cannot even hold the fixed header.
	ErrMessageTooShort = errors.New("message shorter than header")

	// ErrTruncatedRecord means a section count promised more data than the
	// buffer holds, or an RDLENGTH runs past the buffer end.
	ErrTruncatedRecord = errors.New("record truncated")

	// ErrBadPointer means a compression pointer is cut off or its target
	// lies outside the message buffer.
	ErrBadPointer = errors.New("invalid compression pointer")

	// ErrTooManyPointerHops means a pointer chain exceeded the hop budget,
	// which only happens for cyclic or absurdly nested compression.
	ErrTooManyPointerHops = errors.New("compression pointer loop")

	// ErrReservedLabelBits means a label length byte uses the reserved
	// 0x40/0x80 prefixes, which are neither a plain label nor a pointer.
	ErrReservedLabelBits = errors.New("reserved label type bits set")
)
