package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cmn", "zh"},
		{"ZHO", "zh"},
		{"yue", "zh"},
		{"jpn", "ja"},
		{"fre", "fr"},
		{"xx", "xx"},
		{"xyz", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToISO2(tt.input); got != tt.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cmn", "Chinese (Mandarin)"},
		{"ja", "Japanese"},
		{" eng ", "English"},
		{"", "Unknown"},
		{"tlh", "TLH"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsChinese(t *testing.T) {
	for _, code := range []string{"cmn", "zh", "yue", "chi"} {
		if !IsChinese(code) {
			t.Errorf("IsChinese(%q) = false", code)
		}
	}
	for _, code := range []string{"jpn", "kor", "", "xyz"} {
		if IsChinese(code) {
			t.Errorf("IsChinese(%q) = true", code)
		}
	}
}
