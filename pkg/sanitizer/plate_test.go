package sanitizer

import "testing"

func TestSanitizePlate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already canonical", "KA01AB1234", "KA01AB1234"},
		{"lowercase", "ka01ab1234", "KA01AB1234"},
		{"internal spaces", "KA 01 AB 1234", "KA01AB1234"},
		{"dashes", "ka-01-ab-1234", "KA01AB1234"},
		{"surrounding whitespace", "  AB123  ", "AB123"},
		{"mixed", " ka-01 Ab 1234 ", "KA01AB1234"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePlate(tt.input); got != tt.expected {
				t.Errorf("SanitizePlate(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
