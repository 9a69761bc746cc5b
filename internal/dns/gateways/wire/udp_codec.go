// Package wire encodes and decodes DNS messages in the RFC 1035 wire format,
// including domain-name compression with defensive pointer following.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// headerLen is the fixed DNS header size: ID, flags, and four section counts.
const headerLen = 12

// udpCodec implements Codec for the standard UDP wire format.
type udpCodec struct {
	logger log.Logger
}

// NewCodec returns a Codec for the standard wire format. The logger only
// sees debug-level traffic summaries.
func NewCodec(logger log.Logger) Codec {
	return &udpCodec{logger: logger}
}

// estimateSize returns an upper bound on the encoded size of m. Compression
// only ever shrinks names, so pre-sizing the buffer with this bound means
// encoding never reallocates. It must never under-estimate.
func estimateSize(m domain.Message) int {
	n := headerLen
	for _, q := range m.Questions {
		n += q.Name.EncodedLen() + 4 // type + class
	}
	for _, section := range [][]domain.ResourceRecord{m.Answers, m.Authority, m.Additional} {
		for _, rr := range section {
			n += rr.Name.EncodedLen() + 10 + len(rr.Data) // type+class+ttl+rdlength
		}
	}
	return n
}

// EncodeMessage serializes m. The header counts are derived from the section
// slice lengths, and one compression table is shared across all four
// sections so repeated suffixes anywhere in the message compress. Encoding
// the same message twice yields identical bytes.
func (c *udpCodec) EncodeMessage(m domain.Message) ([]byte, error) {
	for _, n := range []int{len(m.Questions), len(m.Answers), len(m.Authority), len(m.Additional)} {
		if n > 0xFFFF {
			return nil, fmt.Errorf("section too large: %d records (max 65535)", n)
		}
	}

	buf := make([]byte, 0, estimateSize(m))
	buf = binary.BigEndian.AppendUint16(buf, m.ID)
	buf = binary.BigEndian.AppendUint16(buf, uint16(m.Flags))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Questions)))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Answers)))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Authority)))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Additional)))

	// one table for the whole message; discarded when encoding finishes
	table := make(map[string]int)

	var err error
	for _, q := range m.Questions {
		if buf, err = appendName(buf, q.Name, table); err != nil {
			return nil, err
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(q.Type))
		buf = binary.BigEndian.AppendUint16(buf, uint16(q.Class))
	}
	for _, section := range [][]domain.ResourceRecord{m.Answers, m.Authority, m.Additional} {
		for _, rr := range section {
			if buf, err = appendRecord(buf, rr, table); err != nil {
				return nil, err
			}
		}
	}

	c.logger.Debug(map[string]any{
		"id":   m.ID,
		"size": len(buf),
	}, "Encoded DNS message")

	return buf, nil
}

// appendRecord writes one resource record. RDATA is treated as opaque bytes;
// names inside RDATA are never compressed.
func appendRecord(buf []byte, rr domain.ResourceRecord, table map[string]int) ([]byte, error) {
	if len(rr.Data) > 0xFFFF {
		return nil, fmt.Errorf("record data too large: %d bytes (max 65535)", len(rr.Data))
	}
	buf, err := appendName(buf, rr.Name, table)
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint16(buf, rr.Type)
	buf = binary.BigEndian.AppendUint16(buf, rr.Class)
	buf = binary.BigEndian.AppendUint32(buf, rr.TTL)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rr.Data)))
	return append(buf, rr.Data...), nil
}

// DecodeMessage parses one datagram. The section counts in the header
// dictate how many records to read; a buffer that runs out before the counts
// are satisfied is a decode error, as is any RDLENGTH running past the end.
func (c *udpCodec) DecodeMessage(data []byte) (domain.Message, error) {
	if len(data) < headerLen {
		return domain.Message{}, fmt.Errorf("%w: %d bytes", ErrMessageTooShort, len(data))
	}

	m := domain.Message{
		ID:    binary.BigEndian.Uint16(data[0:2]),
		Flags: domain.Flags(binary.BigEndian.Uint16(data[2:4])),
	}
	qdCount := int(binary.BigEndian.Uint16(data[4:6]))
	anCount := int(binary.BigEndian.Uint16(data[6:8]))
	nsCount := int(binary.BigEndian.Uint16(data[8:10]))
	arCount := int(binary.BigEndian.Uint16(data[10:12]))

	off := headerLen
	for i := 0; i < qdCount; i++ {
		name, next, err := decodeName(data, off)
		if err != nil {
			return domain.Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		if next+4 > len(data) {
			return domain.Message{}, fmt.Errorf("question %d: %w", i, ErrTruncatedRecord)
		}
		m.Questions = append(m.Questions, domain.Question{
			Name:  name,
			Type:  domain.RRType(binary.BigEndian.Uint16(data[next : next+2])),
			Class: domain.RRClass(binary.BigEndian.Uint16(data[next+2 : next+4])),
		})
		off = next + 4
	}

	sections := []struct {
		label string
		count int
		dst   *[]domain.ResourceRecord
	}{
		{"answer", anCount, &m.Answers},
		{"authority", nsCount, &m.Authority},
		{"additional", arCount, &m.Additional},
	}
	for _, s := range sections {
		for i := 0; i < s.count; i++ {
			rr, next, err := decodeRecord(data, off)
			if err != nil {
				return domain.Message{}, fmt.Errorf("%s record %d: %w", s.label, i, err)
			}
			*s.dst = append(*s.dst, rr)
			off = next
		}
	}

	c.logger.Debug(map[string]any{
		"id":      m.ID,
		"rcode":   m.Flags.RCode().String(),
		"answers": len(m.Answers),
		"size":    len(data),
	}, "Decoded DNS message")

	return m, nil
}

// decodeRecord parses one resource record starting at off and returns it
// along with the offset just past its RDATA.
func decodeRecord(data []byte, off int) (domain.ResourceRecord, int, error) {
	name, next, err := decodeName(data, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if next+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: fixed fields", ErrTruncatedRecord)
	}
	rr := domain.ResourceRecord{
		Name:  name,
		Type:  binary.BigEndian.Uint16(data[next : next+2]),
		Class: binary.BigEndian.Uint16(data[next+2 : next+4]),
		TTL:   binary.BigEndian.Uint32(data[next+4 : next+8]),
	}
	rdLen := int(binary.BigEndian.Uint16(data[next+8 : next+10]))
	next += 10
	if next+rdLen > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdata of %d bytes", ErrTruncatedRecord, rdLen)
	}
	if rdLen > 0 {
		rr.Data = make([]byte, rdLen)
		copy(rr.Data, data[next:next+rdLen])
	}
	return rr, next + rdLen, nil
}

var _ Codec = &udpCodec{}
