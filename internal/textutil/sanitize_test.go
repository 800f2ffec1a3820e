package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"第01章", "第01章"},
		{" a/b\\c:d*e ", "a-b-c-d-e"},
		{`what?"<>|`, "what"},
		{"   ", ""},
		{"tab\there\n", "tabhere"},
		{"第{index}章..", "第{index}章"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.input); got != tt.expected {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
