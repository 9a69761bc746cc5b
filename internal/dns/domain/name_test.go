package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Name
	}{
		{"simple", "google.com", Name{"google", "com"}},
		{"trailing dot", "google.com.", Name{"google", "com"}},
		{"single label", "localhost", Name{"localhost"}},
		{"empty is root", "", Name{}},
		{"dot is root", ".", Name{}},
		{"deep", "a.b.c.example.org", Name{"a", "b", "c", "example", "org"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseName(tt.input))
		})
	}
}

func TestNameString(t *testing.T) {
	assert.Equal(t, "google.com", ParseName("google.com.").String())
	assert.Equal(t, ".", Name{}.String())
}

func TestNameEqual(t *testing.T) {
	assert.True(t, ParseName("www.example.com").Equal(ParseName("www.example.com")))
	assert.False(t, ParseName("www.example.com").Equal(ParseName("example.com")))
	// equality is case-sensitive: no folding anywhere in the library
	assert.False(t, ParseName("WWW.example.com").Equal(ParseName("www.example.com")))
	assert.True(t, Name{}.Equal(Name{}))
}

func TestNameValidate(t *testing.T) {
	require.NoError(t, ParseName("example.com").Validate())
	require.NoError(t, Name{}.Validate())

	long := strings.Repeat("a", 64)
	err := Name{long, "com"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label too long")

	err = Name{"foo", ""}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty label")
}

func TestNameEncodedLen(t *testing.T) {
	// 1+6 + 1+3 + terminator
	assert.Equal(t, 12, ParseName("google.com").EncodedLen())
	assert.Equal(t, 1, Name{}.EncodedLen())
}
