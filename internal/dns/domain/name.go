package domain

import (
	"fmt"
	"strings"
)

// maxLabelLength is the wire-format limit for a single label: the length
// prefix is one byte and the top two bits are reserved for compression
// pointers, leaving 0-63.
const maxLabelLength = 63

// Name is a domain name as an ordered sequence of labels. The root name is
// the empty sequence. Labels are kept exactly as given; no case folding is
// performed anywhere, so two names differing only in case are not equal.
type Name []string

// ParseName splits a presentation-form domain name ("www.example.com",
// trailing dot tolerated) into labels. "" and "." both yield the root name.
func ParseName(s string) Name {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return Name{}
	}
	return Name(strings.Split(s, "."))
}

// String joins the labels with dots. The root name renders as ".".
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}
	return strings.Join(n, ".")
}

// IsRoot reports whether the name is the empty label sequence.
func (n Name) IsRoot() bool {
	return len(n) == 0
}

// Equal reports case-sensitive ordered equality of labels.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i := range n {
		if n[i] != other[i] {
			return false
		}
	}
	return true
}

// Validate checks that every label fits the wire format: non-empty and at
// most 63 bytes. The root name is valid.
func (n Name) Validate() error {
	for _, label := range n {
		if label == "" {
			return fmt.Errorf("name %q contains an empty label", n.String())
		}
		if len(label) > maxLabelLength {
			return fmt.Errorf("label too long: %q (%d bytes)", label, len(label))
		}
	}
	return nil
}

// EncodedLen returns the wire length of the name without compression: one
// length byte per label plus the label bytes, plus the zero terminator.
// An encoder using compression never exceeds this bound.
func (n Name) EncodedLen() int {
	total := 1
	for _, label := range n {
		total += 1 + len(label)
	}
	return total
}
