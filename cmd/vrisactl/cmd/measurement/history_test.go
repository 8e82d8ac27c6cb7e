package measurement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := map[string]time.Duration{
		"24h":  24 * time.Hour,
		"7d":   7 * 24 * time.Hour,
		"30d":  30 * 24 * time.Hour,
		"90m":  90 * time.Minute,
		" 1d ": 24 * time.Hour,
	}
	for input, want := range tests {
		got, err := parsePeriod(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, bad := range []string{"", "0d", "-2h", "week", "xd"} {
		_, err := parsePeriod(bad)
		assert.Error(t, err, bad)
	}
}
