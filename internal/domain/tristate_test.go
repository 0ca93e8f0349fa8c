package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTriState(t *testing.T) {
	cases := []struct {
		in   string
		want TriState
	}{
		{"yes", TriApplies},
		{"Y", TriApplies},
		{"1", TriApplies},
		{"TRUE", TriApplies},
		{"no", TriNotApplicable},
		{"0", TriNotApplicable},
		{"", TriIgnored},
		{"-", TriIgnored},
		{"skip", TriIgnored},
		{"  yes  ", TriApplies},
	}
	for _, c := range cases {
		got, err := ParseTriState(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestParseTriState_Invalid(t *testing.T) {
	_, err := ParseTriState("maybe")
	assert.Error(t, err)
}

func TestTriState_JSONEncoding(t *testing.T) {
	data, err := json.Marshal([]TriState{TriApplies, TriNotApplicable, TriIgnored})
	require.NoError(t, err)
	assert.Equal(t, "[1,0,null]", string(data))
}

func TestTriState_JSONDecoding_CanonicalizesLooseValues(t *testing.T) {
	var got []TriState
	// Legacy files mix 1/0/null with true/false; anything else means no
	// opinion rather than a load failure.
	require.NoError(t, json.Unmarshal([]byte(`[1, 0, null, true, false, "weird"]`), &got))
	assert.Equal(t, []TriState{
		TriApplies, TriNotApplicable, TriIgnored, TriApplies, TriNotApplicable, TriIgnored,
	}, got)
}

func TestTriState_String(t *testing.T) {
	assert.Equal(t, "yes", TriApplies.String())
	assert.Equal(t, "no", TriNotApplicable.String())
	assert.Equal(t, "-", TriIgnored.String())
}
