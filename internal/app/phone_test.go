package app

import "testing"

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "+1 (805) 555-1234", want: "8055551234"},
		{input: "805-555-1234", want: "8055551234"},
		{input: "1.805.555.1234", want: "8055551234"},
		{input: "8055551234", want: "8055551234"},
		{input: "", want: ""},
		{input: "ext. 42", want: "42"},
		// An 11-digit number not starting with 1 keeps all its digits.
		{input: "28055551234", want: "28055551234"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanPhone(tt.input); got != tt.want {
				t.Fatalf("CleanPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
