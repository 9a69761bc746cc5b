package wire

import (
	"encoding/binary"
	"testing"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec() Codec {
	return NewCodec(log.NewNoopLogger())
}

func mustQuestion(t *testing.T, name string, rrtype domain.RRType) domain.Question {
	t.Helper()
	q, err := domain.NewQuestion(name, rrtype)
	require.NoError(t, err)
	return q
}

func TestEncodeDecode_QueryScenario(t *testing.T) {
	c := testCodec()
	m := domain.NewQueryMessage(0x1234, mustQuestion(t, "google.com", domain.RRTypeA), 4096)

	data, err := c.EncodeMessage(m)
	require.NoError(t, err)

	// spot-check the fixed header bytes
	assert.Equal(t, uint16(0x1234), binary.BigEndian.Uint16(data[0:2]))
	assert.Equal(t, uint16(0x0100), binary.BigEndian.Uint16(data[2:4]))
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(data[4:6]), "QDCOUNT")
	assert.Equal(t, uint16(0), binary.BigEndian.Uint16(data[6:8]), "ANCOUNT")
	assert.Equal(t, uint16(1), binary.BigEndian.Uint16(data[10:12]), "ARCOUNT holds the OPT")

	got, err := c.DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), got.ID)
	assert.True(t, got.Flags.RecursionDesired())
	assert.False(t, got.Flags.Response())
	require.Len(t, got.Questions, 1)
	assert.True(t, domain.ParseName("google.com").Equal(got.Questions[0].Name))
	assert.Equal(t, domain.RRTypeA, got.Questions[0].Type)
	assert.Empty(t, got.Answers)
	require.Len(t, got.Additional, 1)
	assert.True(t, got.Additional[0].IsOPT())
	assert.Equal(t, uint16(4096), got.Additional[0].Class)
}

func TestEncodeDecode_FullRoundTrip(t *testing.T) {
	c := testCodec()
	m := domain.Message{
		ID: 0xBEEF,
		Questions: []domain.Question{
			mustQuestion(t, "www.example.com", domain.RRTypeA),
		},
		Answers: []domain.ResourceRecord{
			{Name: domain.ParseName("www.example.com"), Type: 1, Class: 1, TTL: 300, Data: []byte{93, 184, 216, 34}},
			{Name: domain.ParseName("www.example.com"), Type: 28, Class: 1, TTL: 300, Data: make([]byte, 16)},
		},
		Authority: []domain.ResourceRecord{
			{Name: domain.ParseName("example.com"), Type: 2, Class: 1, TTL: 86400, Data: []byte{2, 'n', 's', 0}},
		},
		Additional: []domain.ResourceRecord{
			domain.NewOPTRecord(4096),
		},
	}
	m.Flags.SetResponse(true)
	m.Flags.SetRecursionDesired(true)
	m.Flags.SetRecursionAvailable(true)

	data, err := c.EncodeMessage(m)
	require.NoError(t, err)

	got, err := c.DecodeMessage(data)
	require.NoError(t, err)

	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Flags, got.Flags)
	require.Len(t, got.Questions, len(m.Questions))
	for i := range m.Questions {
		assert.True(t, m.Questions[i].Name.Equal(got.Questions[i].Name))
		assert.Equal(t, m.Questions[i].Type, got.Questions[i].Type)
		assert.Equal(t, m.Questions[i].Class, got.Questions[i].Class)
	}
	require.Len(t, got.Answers, len(m.Answers))
	for i := range m.Answers {
		assert.True(t, m.Answers[i].Name.Equal(got.Answers[i].Name))
		assert.Equal(t, m.Answers[i].Type, got.Answers[i].Type)
		assert.Equal(t, m.Answers[i].Class, got.Answers[i].Class)
		assert.Equal(t, m.Answers[i].TTL, got.Answers[i].TTL)
		assert.Equal(t, m.Answers[i].Data, got.Answers[i].Data)
	}
	require.Len(t, got.Authority, 1)
	assert.True(t, m.Authority[0].Name.Equal(got.Authority[0].Name))
	require.Len(t, got.Additional, 1)
	assert.True(t, got.Additional[0].Name.IsRoot())
}

func TestEncode_Deterministic(t *testing.T) {
	c := testCodec()
	m := domain.Message{
		ID:        42,
		Questions: []domain.Question{mustQuestion(t, "example.com", domain.RRTypeTXT)},
		Answers: []domain.ResourceRecord{
			{Name: domain.ParseName("example.com"), Type: 16, Class: 1, TTL: 60, Data: []byte{5, 'h', 'e', 'l', 'l', 'o'}},
		},
	}
	a, err := c.EncodeMessage(m)
	require.NoError(t, err)
	b, err := c.EncodeMessage(m)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncode_CompressionShrinksOutput(t *testing.T) {
	c := testCodec()
	m := domain.Message{
		ID:        7,
		Questions: []domain.Question{mustQuestion(t, "www.example.com", domain.RRTypeA)},
		Answers: []domain.ResourceRecord{
			{Name: domain.ParseName("www.example.com"), Type: 1, Class: 1, TTL: 60, Data: []byte{192, 0, 2, 1}},
			{Name: domain.ParseName("mail.example.com"), Type: 1, Class: 1, TTL: 60, Data: []byte{192, 0, 2, 2}},
		},
	}
	data, err := c.EncodeMessage(m)
	require.NoError(t, err)

	// estimateSize is exact for an encoding with compression disabled, so a
	// strictly smaller output proves the shared suffixes became pointers.
	assert.Less(t, len(data), estimateSize(m))

	got, err := c.DecodeMessage(data)
	require.NoError(t, err)
	require.Len(t, got.Answers, 2)
	assert.True(t, domain.ParseName("www.example.com").Equal(got.Answers[0].Name))
	assert.True(t, domain.ParseName("mail.example.com").Equal(got.Answers[1].Name))
}

func TestEstimateSize_NeverUnderEstimates(t *testing.T) {
	c := testCodec()
	messages := []domain.Message{
		{ID: 1, Questions: []domain.Question{mustQuestion(t, "a.io", domain.RRTypeA)}},
		domain.NewQueryMessage(2, mustQuestion(t, "x.y.z.example.net", domain.RRTypeAAAA), 1232),
		{
			ID:        3,
			Questions: []domain.Question{mustQuestion(t, "example.com", domain.RRTypeANY)},
			Answers: []domain.ResourceRecord{
				{Name: domain.ParseName("example.com"), Type: 16, Class: 1, TTL: 1, Data: []byte{3, 'a', 'b', 'c'}},
				{Name: domain.ParseName("sub.example.com"), Type: 1, Class: 1, TTL: 1, Data: []byte{1, 2, 3, 4}},
			},
		},
	}
	for _, m := range messages {
		data, err := c.EncodeMessage(m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, estimateSize(m), len(data))
	}
}

func TestDecode_Errors(t *testing.T) {
	c := testCodec()

	t.Run("short header", func(t *testing.T) {
		_, err := c.DecodeMessage([]byte{0, 1, 2})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMessageTooShort)
	})

	t.Run("count promises missing question", func(t *testing.T) {
		hdr := make([]byte, headerLen)
		binary.BigEndian.PutUint16(hdr[4:6], 1) // QDCOUNT=1, no body
		_, err := c.DecodeMessage(hdr)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncatedRecord)
	})

	t.Run("count promises missing answer", func(t *testing.T) {
		m := domain.NewQueryMessage(9, mustQuestion(t, "example.com", domain.RRTypeA), 512)
		data, err := c.EncodeMessage(m)
		require.NoError(t, err)
		binary.BigEndian.PutUint16(data[6:8], 3) // claim three answers
		_, err = c.DecodeMessage(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncatedRecord)
	})

	t.Run("rdlength past buffer", func(t *testing.T) {
		m := domain.Message{
			ID:        9,
			Questions: []domain.Question{mustQuestion(t, "example.com", domain.RRTypeA)},
			Answers: []domain.ResourceRecord{
				{Name: domain.ParseName("example.com"), Type: 1, Class: 1, TTL: 1, Data: []byte{1, 2, 3, 4}},
			},
		}
		data, err := c.EncodeMessage(m)
		require.NoError(t, err)
		// inflate the final RDLENGTH so it overruns the buffer
		binary.BigEndian.PutUint16(data[len(data)-6:len(data)-4], 500)
		_, err = c.DecodeMessage(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTruncatedRecord)
	})

	t.Run("pointer past buffer", func(t *testing.T) {
		hdr := make([]byte, headerLen, headerLen+6)
		binary.BigEndian.PutUint16(hdr[4:6], 1)
		data := append(hdr, 0xC3, 0xFF, 0, 1, 0, 1) // pointer to offset 0x3FF
		_, err := c.DecodeMessage(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadPointer)
	})
}

func TestEncode_RejectsBadLabels(t *testing.T) {
	c := testCodec()
	long := make([]byte, 70)
	for i := range long {
		long[i] = 'x'
	}
	m := domain.Message{
		ID:        1,
		Questions: []domain.Question{{Name: domain.Name{string(long)}, Type: domain.RRTypeA, Class: domain.RRClassIN}},
	}
	_, err := c.EncodeMessage(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label too long")
}
