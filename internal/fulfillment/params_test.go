package fulfillment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamString(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "  Zakat ", "Zakat"},
		{"number", float64(3001234567), "3001234567"},
		{"person object", map[string]any{"name": "Ayesha"}, "Ayesha"},
		{"given and last", map[string]any{"given-name": "Ali", "last-name": "Khan"}, "Ali Khan"},
		{"given only", map[string]any{"given-name": "Ali", "original": "ali"}, "Ali"},
		{"last only", map[string]any{"last-name": "Khan", "family": "x", "given": ""}, "Khan"},
		{"name wins over parts", map[string]any{"name": "Ali Khan Sahib", "given-name": "Ali"}, "Ali Khan Sahib"},
		{"original", map[string]any{"original": "Ali bhai"}, "Ali bhai"},
		{"object without names", map[string]any{"age": float64(20)}, ""},
		{"list", []any{"Web Development", map[string]any{"name": "Python"}, ""}, "Web Development, Python"},
		{"unsupported", struct{}{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paramString(tc.in))
		})
	}
}

func TestParamFirstNonEmpty(t *testing.T) {
	params := map[string]any{"Donation": "Sadqa", "donation_type": ""}
	assert.Equal(t, "Sadqa", param(params, "donation_type", "Donation"))
	assert.Equal(t, "", param(params, "missing"))
}

func TestDateAndTimeParams(t *testing.T) {
	assert.Equal(t, "2026-10-20", dateParam("2026-10-20T12:00:00+05:00"))
	assert.Equal(t, "15:30", timeParam("2026-10-18T15:30:00+05:00"))
	assert.Equal(t, "next monday", dateParam("next monday"))
}
