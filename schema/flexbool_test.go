package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlexBoolNormalization tests the truth rule across every encoding the
// tracking system is known to emit.
func TestFlexBoolNormalization(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"integer one", 1, true},
		{"integer zero", 0, false},
		{"integer two", 2, false},
		{"int64 one", int64(1), true},
		{"float one", 1.0, true},
		{"float zero", 0.0, false},
		{"string one", "1", true},
		{"string zero", "0", false},
		{"padded string one", " 1 ", true},
		{"string yes", "yes", false},
		{"string no", "no", false},
		{"empty string", "", false},
		{"native true", true, true},
		{"native false", false, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewFlexBool(tt.raw).Bool())
		})
	}
}

// TestFlexBoolString tests the canonical rendering.
func TestFlexBoolString(t *testing.T) {
	assert.Equal(t, "1", NewFlexBool("1").String())
	assert.Equal(t, "0", NewFlexBool("maybe").String())
}

// TestFlexBoolJSON tests decoding from the mixed JSON shapes.
func TestFlexBoolJSON(t *testing.T) {
	t.Run("decodes mixed encodings in one document", func(t *testing.T) {
		var rec PICommitmentRecord
		payload := `{
			"issue_key": "FL-1",
			"planned_committed": 1,
			"planned_uncommitted": "0",
			"plc_delivery": "1"
		}`
		require.NoError(t, json.Unmarshal([]byte(payload), &rec))
		assert.True(t, rec.PlannedCommitted.Bool())
		assert.False(t, rec.PlannedUncommitted.Bool())
		assert.True(t, rec.PLCDelivery.Bool())
	})

	t.Run("null decodes to false", func(t *testing.T) {
		var f FlexBool
		require.NoError(t, json.Unmarshal([]byte(`null`), &f))
		assert.False(t, f.Bool())
	})

	t.Run("marshals to normalized numeric form", func(t *testing.T) {
		out, err := json.Marshal(NewFlexBool(" 1 "))
		require.NoError(t, err)
		assert.Equal(t, "1", string(out))
	})
}

// FuzzFlexBoolString fuzzes the string normalization path: only a trimmed
// "1" may ever read as true.
func FuzzFlexBoolString(f *testing.F) {
	for _, seed := range []string{"1", "0", " 1 ", "01", "true", "", "yes", "1.0"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got := NewFlexBool(s).Bool()
		want := strings.TrimSpace(s) == "1"
		if got != want {
			t.Errorf("FlexBool(%q).Bool() = %v, want %v", s, got, want)
		}
	})
}
