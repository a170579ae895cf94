package util

import "testing"

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "simple string",
			input:    "hello",
			expected: "hello",
		},
		{
			name:     "double quotes",
			input:    `say "hi"`,
			expected: `say \"hi\"`,
		},
		{
			name:     "backslash",
			input:    `a\b`,
			expected: `a\\b`,
		},
		{
			name:     "newline and tab",
			input:    "a\nb\tc",
			expected: `a\nb\tc`,
		},
		{
			name:     "control characters",
			input:    "a\x01\x02b",
			expected: `a\x01\x02b`,
		},
		{
			name:     "carriage return",
			input:    "a\rb",
			expected: `a\x0Db`,
		},
		{
			name:     "non-ascii rune",
			input:    "aÿb",
			expected: `a\xFFb`,
		},
		{
			name:     "printable ascii untouched",
			input:    "!@#$%^&*()_+=-[]{}|;':,.<>?",
			expected: "!@#$%^&*()_+=-[]{}|;':,.<>?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeString(tt.input)
			if got != tt.expected {
				t.Errorf("EscapeString(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
