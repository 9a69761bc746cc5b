package wire

import (
	"fmt"

	"github.com/kestrelns/kestrel/internal/dns/domain"
)

const (
	// pointerMask marks the top two bits of a length byte that turn it into
	// the first byte of a 2-byte compression pointer.
	pointerMask = 0xC0

	// maxPointerOffset is the largest offset a 14-bit pointer can address.
	// Suffixes written beyond it are not recorded in the compression table.
	maxPointerOffset = 0x3FFF

	// maxPointerHops bounds pointer chasing during decode. Legitimate
	// messages use one pointer per name; the bound exists so a cyclic or
	// adversarial chain fails instead of spinning.
	maxPointerHops = 16
)

// appendName appends name to buf in wire format: a length byte (0-63)
// followed by the raw label bytes, terminated by a zero length.
//
// When table is non-nil, the remaining suffix is looked up before each label
// is written. On a hit the suffix is replaced by a 2-byte pointer to its
// first occurrence and encoding stops. On a miss the current write offset is
// recorded under that suffix (offsets past the 14-bit range are skipped), so
// names written later in the same message can point back into this one.
// Offsets in the table are relative to the start of the message, i.e. buf[0].
func appendName(buf []byte, name domain.Name, table map[string]int) ([]byte, error) {
	for i, label := range name {
		if len(label) == 0 {
			return nil, fmt.Errorf("empty label in name %q", name.String())
		}
		if len(label) > 63 {
			return nil, fmt.Errorf("label too long: %q (%d bytes)", label, len(label))
		}
		if table != nil {
			suffix := domain.Name(name[i:]).String()
			if off, ok := table[suffix]; ok {
				return append(buf, pointerMask|byte(off>>8), byte(off)), nil
			}
			if len(buf) <= maxPointerOffset {
				table[suffix] = len(buf)
			}
		}
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	return append(buf, 0), nil
}

// decodeName reads a name from msg starting at off, following compression
// pointers. Pointer offsets are relative to the start of msg, which is
// always the full datagram.
//
// Returns the decoded name and the offset just past the name in the
// original, un-jumped byte stream. Every pointer target must lie inside the
// buffer and chains are bounded by maxPointerHops, so malformed or cyclic
// compression fails with a decode error instead of reading out of bounds or
// looping forever.
func decodeName(msg []byte, off int) (domain.Name, int, error) {
	var name domain.Name
	resume := -1 // where the un-jumped stream continues after the first pointer
	hops := 0
	for {
		if off >= len(msg) {
			return nil, 0, fmt.Errorf("%w: name runs past buffer at offset %d", ErrTruncatedRecord, off)
		}
		b := int(msg[off])
		switch {
		case b == 0:
			if resume >= 0 {
				return name, resume, nil
			}
			return name, off + 1, nil

		case b&pointerMask == pointerMask:
			if off+1 >= len(msg) {
				return nil, 0, fmt.Errorf("%w: pointer cut off at offset %d", ErrBadPointer, off)
			}
			target := (b&^pointerMask)<<8 | int(msg[off+1])
			if target >= len(msg) {
				return nil, 0, fmt.Errorf("%w: target %d beyond buffer of %d bytes", ErrBadPointer, target, len(msg))
			}
			hops++
			if hops > maxPointerHops {
				return nil, 0, fmt.Errorf("%w: more than %d hops", ErrTooManyPointerHops, maxPointerHops)
			}
			if resume < 0 {
				resume = off + 2
			}
			off = target

		case b&pointerMask != 0:
			return nil, 0, fmt.Errorf("%w: length byte 0x%02x at offset %d", ErrReservedLabelBits, b, off)

		default:
			if off+1+b > len(msg) {
				return nil, 0, fmt.Errorf("%w: label of %d bytes at offset %d", ErrTruncatedRecord, b, off)
			}
			name = append(name, string(msg[off+1:off+1+b]))
			off += 1 + b
		}
	}
}
