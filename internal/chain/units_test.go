package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "whole ether",
			input: "1",
			want:  "1000000000000000000",
		},
		{
			name:  "fractional",
			input: "0.05",
			want:  "50000000000000000",
		},
		{
			name:  "single wei",
			input: "0.000000000000000001",
			want:  "1",
		},
		{
			name:  "zero",
			input: "0",
			want:  "0",
		},
		{
			name:    "too many decimals",
			input:   "0.0000000000000000001",
			wantErr: true,
		},
		{
			name:    "negative",
			input:   "-1",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "lots",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "scientific notation rejected",
			input:   "1e18",
			wantErr: true,
		},
		{
			name:    "fraction rejected",
			input:   "3/2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEther(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			want, ok := new(big.Int).SetString(tt.want, 10)
			require.True(t, ok)
			assert.Zero(t, want.Cmp(got))
		})
	}
}
