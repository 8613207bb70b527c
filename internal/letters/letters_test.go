package letters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 26)
	assert.Equal(t, Label('A'), all[0])
	assert.Equal(t, Label('Z'), all[25])
	for i, l := range all {
		assert.Equal(t, i, l.Ordinal())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Label
		wantErr bool
	}{
		{"A", 'A', false},
		{" T ", 'T', false},
		{"Z", 'Z', false},
		{"a", 0, true},
		{"1", 0, true},
		{"AB", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_OutOfRangeType(t *testing.T) {
	_, err := Parse("1")
	var oor *ErrLabelOutOfRange
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, Label('1'), oor.Label)
}

func TestFromOrdinal(t *testing.T) {
	l, err := FromOrdinal(2)
	require.NoError(t, err)
	assert.Equal(t, "C", l.String())

	_, err = FromOrdinal(26)
	assert.Error(t, err)
	_, err = FromOrdinal(-1)
	assert.Error(t, err)
}
