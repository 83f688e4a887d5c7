package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJiraDuration(t *testing.T) {
	cases := map[string]int64{
		"":             0,
		"3600":         3600,
		"45m":          45 * 60,
		"1d 2h":        (8 + 2) * 3600,
		"2w 3d 4h 30m": 2*5*8*3600 + 3*8*3600 + 4*3600 + 30*60,
		"1H 15M":       3600 + 15*60,
	}
	for in, want := range cases {
		got, err := ParseJiraDuration(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseJiraDuration_Unrecognized(t *testing.T) {
	_, err := ParseJiraDuration("soon")
	assert.Error(t, err)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "0m", FormatHours(0))
	assert.Equal(t, "45m", FormatHours(45*60))
	assert.Equal(t, "8h", FormatHours(8*3600))
	assert.Equal(t, "2h 30m", FormatHours(2*3600+30*60))
	assert.Equal(t, "-1h", FormatHours(-3600))
}
