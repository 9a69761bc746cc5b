package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_ReadAfterWrite(t *testing.T) {
	var f Flags

	f.SetResponse(true)
	assert.True(t, f.Response())
	f.SetAuthoritative(true)
	assert.True(t, f.Authoritative())
	f.SetTruncated(true)
	assert.True(t, f.Truncated())
	f.SetRecursionDesired(true)
	assert.True(t, f.RecursionDesired())
	f.SetRecursionAvailable(true)
	assert.True(t, f.RecursionAvailable())
	f.SetOpcode(OpcodeStatus)
	assert.Equal(t, OpcodeStatus, f.Opcode())
	f.SetRCode(RCodeNXDomain)
	assert.Equal(t, RCodeNXDomain, f.RCode())

	// everything written above is still intact
	assert.True(t, f.Response())
	assert.True(t, f.Authoritative())
	assert.True(t, f.Truncated())
	assert.True(t, f.RecursionDesired())
	assert.True(t, f.RecursionAvailable())
	assert.Equal(t, OpcodeStatus, f.Opcode())
	assert.Equal(t, RCodeNXDomain, f.RCode())
}

func TestFlags_FieldsAreIndependent(t *testing.T) {
	tests := []struct {
		name string
		set  func(f *Flags)
	}{
		{"QR", func(f *Flags) { f.SetResponse(true) }},
		{"AA", func(f *Flags) { f.SetAuthoritative(true) }},
		{"TC", func(f *Flags) { f.SetTruncated(true) }},
		{"RD", func(f *Flags) { f.SetRecursionDesired(true) }},
		{"RA", func(f *Flags) { f.SetRecursionAvailable(true) }},
		{"Opcode", func(f *Flags) { f.SetOpcode(OpcodeNotify) }},
		{"RCode", func(f *Flags) { f.SetRCode(RCodeRefused) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Flags
			tt.set(&f)
			count := 0
			if f.Response() {
				count++
			}
			if f.Authoritative() {
				count++
			}
			if f.Truncated() {
				count++
			}
			if f.RecursionDesired() {
				count++
			}
			if f.RecursionAvailable() {
				count++
			}
			if f.Opcode() != OpcodeQuery {
				count++
			}
			if f.RCode() != RCodeNoError {
				count++
			}
			assert.Equal(t, 1, count, "mutating %s touched another field", tt.name)
		})
	}
}

func TestFlags_ClearBit(t *testing.T) {
	var f Flags
	f.SetRecursionDesired(true)
	f.SetTruncated(true)
	f.SetRecursionDesired(false)
	assert.False(t, f.RecursionDesired())
	assert.True(t, f.Truncated())
}

func TestFlags_WireValue(t *testing.T) {
	// RD on a query is the classic 0x0100 header word
	var f Flags
	f.SetRecursionDesired(true)
	assert.Equal(t, Flags(0x0100), f)

	// standard response with RA: 0x8180
	f = 0
	f.SetResponse(true)
	f.SetRecursionDesired(true)
	f.SetRecursionAvailable(true)
	assert.Equal(t, Flags(0x8180), f)
}
