package sqlite

import (
	"testing"
)

func TestBuildFTSQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple term",
			input:    "dragon",
			expected: "dragon*",
		},
		{
			name:     "multiple terms",
			input:    "gandalf wizard",
			expected: "gandalf* wizard*",
		},
		{
			name:     "quotes stripped",
			input:    `gandalf "the grey"`,
			expected: "gandalf* the* grey*",
		},
		{
			name:     "lone quote dropped",
			input:    `dragon " lair`,
			expected: "dragon* lair*",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
		{
			name:     "repeated whitespace collapses",
			input:    "red \t  dragon\n",
			expected: "red* dragon*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildFTSQuery(tt.input)
			if result != tt.expected {
				t.Errorf("buildFTSQuery(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
