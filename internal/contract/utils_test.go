package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPlainHealthLabel tests score-to-label banding.
func TestGetPlainHealthLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, ExcellentValue},
		{80, ExcellentValue},
		{79.9, HealthyValue},
		{60, HealthyValue},
		{59.9, AtRiskValue},
		{40, AtRiskValue},
		{39.9, CriticalValue},
		{0, CriticalValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainHealthLabel(tt.score), "score %.1f", tt.score)
	}
}

// TestGetPlainSeverityLabel tests bottleneck-score banding, higher is worse.
func TestGetPlainSeverityLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, SevereValue},
		{80, SevereValue},
		{79.9, HighValue},
		{60, HighValue},
		{59.9, ModerateValue},
		{40, ModerateValue},
		{39.9, LowValue},
		{0, LowValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainSeverityLabel(tt.score), "score %.1f", tt.score)
	}
}

// TestColorLabelsPreserveText tests that colored labels carry the plain text.
func TestColorLabelsPreserveText(t *testing.T) {
	assert.Contains(t, GetColorHealthLabel(90), ExcellentValue)
	assert.Contains(t, GetColorHealthLabel(10), CriticalValue)
	assert.Contains(t, GetColorSeverityLabel(90), SevereValue)
	assert.Contains(t, GetColorSeverityLabel(10), LowValue)
}

// TestTruncateID tests left truncation keeps the distinctive tail.
func TestTruncateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		maxWidth int
		want     string
	}{
		{"short id unchanged", "blue", 12, "blue"},
		{"exact width unchanged", "abcdefghijkl", 12, "abcdefghijkl"},
		{"long id keeps tail", "platform-team-blue", 12, "...team-blue"},
		{"width too small to truncate", "abcdef", 3, "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateID(tt.id, tt.maxWidth))
		})
	}
}

// TestParseBoolString tests the yes/no style flag parser.
func TestParseBoolString(t *testing.T) {
	truthy := []string{"yes", "true", "1", "on", "", "YES", " On "}
	for _, s := range truthy {
		v, err := ParseBoolString(s)
		require.NoError(t, err, "value %q", s)
		assert.True(t, v, "value %q", s)
	}

	falsy := []string{"no", "false", "0", "off", "NO"}
	for _, s := range falsy {
		v, err := ParseBoolString(s)
		require.NoError(t, err, "value %q", s)
		assert.False(t, v, "value %q", s)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
