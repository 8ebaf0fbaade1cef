package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/gojoin/errors"
	"github.com/kbukum/gojoin/field"
)

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name    string
		shared  int
		perSide int
		want    int
		wantErr bool
	}{
		{"neither", 0, 0, 0, false},
		{"shared only", 3, 0, 2, false},
		{"per side only", 0, 2, 1, false},
		{"agreeing", 2, 2, 1, false},
		{"conflicting", 1, 2, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveKey(tc.shared, tc.perSide)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeConfigConflict))
				assert.Equal(t, "incompatible join fields 1, 2", errors.Diagnostic(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFieldNumber(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"1", 1, false},
		{"12", 12, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			got, err := ParseFieldNumber(tc.value)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFieldSpec))
				assert.Equal(t, "invalid field number: '"+tc.value+"'", errors.Diagnostic(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSide(t *testing.T) {
	for value, want := range map[string]Side{"": SideNone, "1": Side1, "2": Side2} {
		got, err := ParseSide(value)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, value := range []string{"0", "3", "one", " 1"} {
		_, err := ParseSide(value)
		require.Error(t, err, value)
		assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFileNumber))
	}
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "1", Side1.String())
	assert.Equal(t, "2", Side2.String())
	assert.Equal(t, "none", SideNone.String())
}

func TestSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, field.Blank, s.Separator)
	assert.NoError(t, s.Validate())

	s.Key1, s.Key2 = 2, 4
	assert.Equal(t, 2, s.Key(Side1))
	assert.Equal(t, 4, s.Key(Side2))

	s.Key2 = -1
	assert.True(t, errors.HasCode(s.Validate(), errors.ErrCodeInvalidFieldSpec))

	s.Key2 = 0
	s.Unpaired = Side(7)
	assert.True(t, errors.HasCode(s.Validate(), errors.ErrCodeInvalidFileNumber))
}
