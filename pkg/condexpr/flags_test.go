package condexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   FlagSet
	}{
		{"nil", nil, FlagSet{}},
		{"empty", []string{}, FlagSet{}},
		{"dot all", []string{FlagRegexDotAll}, FlagSet{DotAll: true}},
		{"multiline", []string{FlagRegexMultiline}, FlagSet{Multiline: true}},
		{"case insensitive", []string{FlagCaseInsensitive}, FlagSet{CaseInsensitive: true}},
		{"full match", []string{FlagRegexFullMatch}, FlagSet{FullMatch: true}},
		{
			"all",
			[]string{FlagRegexDotAll, FlagRegexMultiline, FlagCaseInsensitive, FlagRegexFullMatch},
			FlagSet{DotAll: true, Multiline: true, CaseInsensitive: true, FullMatch: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := ParseFlags([]string{"regex_dot_all", "no_such_flag"})
	require.ErrorIs(t, err, ErrUnknownFlag)
	assert.Contains(t, err.Error(), "no_such_flag")
}
