package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryMessage(t *testing.T) {
	q, err := NewQuestion("example.com", RRTypeA)
	require.NoError(t, err)

	m := NewQueryMessage(0x1234, q, 4096)
	assert.Equal(t, uint16(0x1234), m.ID)
	assert.True(t, m.Flags.RecursionDesired())
	assert.False(t, m.Flags.Response())
	require.Len(t, m.Questions, 1)
	assert.Equal(t, q, m.Questions[0])
	require.Len(t, m.Additional, 1)
	assert.True(t, m.Additional[0].IsOPT())
}

func TestNewOPTRecord(t *testing.T) {
	opt := NewOPTRecord(4096)
	assert.True(t, opt.Name.IsRoot())
	assert.Equal(t, uint16(41), opt.Type)
	assert.Equal(t, uint16(4096), opt.Class)
	assert.Equal(t, uint32(0), opt.TTL)
	assert.Empty(t, opt.Data)
}

func TestNewQuestionValidation(t *testing.T) {
	_, err := NewQuestion("", RRTypeA)
	require.Error(t, err)

	_, err = NewQuestion("example.com", RRType(9999))
	require.Error(t, err)

	q, err := NewQuestion("example.com.", RRTypeAAAA)
	require.NoError(t, err)
	assert.Equal(t, RRClassIN, q.Class)
	assert.Equal(t, "example.com AAAA IN", q.String())
}

func TestAnswersOfType(t *testing.T) {
	m := Message{
		Answers: []ResourceRecord{
			{Name: ParseName("a.example"), Type: uint16(RRTypeA), Data: []byte{1, 2, 3, 4}},
			{Name: ParseName("a.example"), Type: uint16(RRTypeAAAA), Data: make([]byte, 16)},
			{Name: ParseName("a.example"), Type: uint16(RRTypeA), Data: []byte{5, 6, 7, 8}},
		},
	}
	got := m.AnswersOfType(RRTypeA)
	require.Len(t, got, 2)
	assert.Equal(t, []byte{1, 2, 3, 4}, got[0].Data)
	assert.Equal(t, []byte{5, 6, 7, 8}, got[1].Data)
	assert.Empty(t, m.AnswersOfType(RRTypeTXT))
}
