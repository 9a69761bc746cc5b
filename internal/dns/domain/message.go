// Package domain holds the value types shared across the library: messages,
// names, questions, resource records, and the enumerations that describe
// them. Types here are pure data; wire encoding lives in gateways/wire.
package domain

// Message is a complete DNS message: the transaction ID, the packed header
// flags, and the four ordered record sections. The section counts in the
// encoded header are always derived from the slice lengths.
type Message struct {
	ID         uint16
	Flags      Flags
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// NewQueryMessage builds a standard recursive query carrying exactly one
// question and an OPT record advertising payloadSize as the supported UDP
// response size.
func NewQueryMessage(id uint16, q Question, payloadSize uint16) Message {
	m := Message{
		ID:         id,
		Questions:  []Question{q},
		Additional: []ResourceRecord{NewOPTRecord(payloadSize)},
	}
	m.Flags.SetRecursionDesired(true)
	return m
}

// AnswersOfType returns the answer records whose raw type code matches t, in
// message order.
func (m Message) AnswersOfType(t RRType) []ResourceRecord {
	var out []ResourceRecord
	for _, rr := range m.Answers {
		if rr.Type == uint16(t) {
			out = append(out, rr)
		}
	}
	return out
}
