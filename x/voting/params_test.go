package voting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGovernanceConfigValidate(t *testing.T) {
	pct := PctBase / 100
	tests := []struct {
		name   string
		config GovernanceConfig
		ok     bool
	}{
		{"default", DefaultGovernanceConfig(), true},
		{"quorum equals support", NewGovernanceConfig(50*pct, 50*pct, time.Hour), true},
		{"unanimity", NewGovernanceConfig(PctBase, PctBase, time.Second), true},
		{"zero quorum", NewGovernanceConfig(50*pct, 0, time.Hour), false},
		{"quorum above support", NewGovernanceConfig(20*pct, 50*pct, time.Hour), false},
		{"support above 100%", NewGovernanceConfig(PctBase+1, 50*pct, time.Hour), false},
		{"sub second duration", NewGovernanceConfig(50*pct, 20*pct, time.Millisecond), false},
	}
	for _, tc := range tests {
		err := tc.config.Validate()
		if tc.ok {
			require.Nil(t, err, tc.name)
		} else {
			require.NotNil(t, err, tc.name)
			require.Equal(t, CodeInvalidConfig, err.Code(), tc.name)
		}
	}
}

func TestParsePct(t *testing.T) {
	tests := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"50%", PctBase / 2, true},
		{"12.5%", PctBase / 8, true},
		{"0.0000000000000001%", 1, true},
		{"100%", PctBase, true},
		{"500000000000000000", PctBase / 2, true},
		{"101%", 0, false},
		{"-1%", 0, false},
		{"1.%", 0, false},
		{"1.00000000000000001%", 0, false},
		{"half", 0, false},
	}
	for _, tc := range tests {
		pct, err := ParsePct(tc.in)
		if !tc.ok {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.out, pct, tc.in)
	}
}

func TestFormatPct(t *testing.T) {
	require.Equal(t, "50%", FormatPct(PctBase/2))
	require.Equal(t, "12.5000000000000000%", FormatPct(PctBase/8))

	pct, err := ParsePct(FormatPct(PctBase / 3))
	require.NoError(t, err)
	require.Equal(t, PctBase/3, pct)
}
