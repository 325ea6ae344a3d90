package langdetect

import (
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{"latin only", "hello", LanguageEnglish},
		{"latin with punctuation", "Hello, world!", LanguageEnglish},
		{"arabic only", "مرحبا", LanguageArabic},
		{"arabic sentence", "السلام عليكم", LanguageArabic},
		{"mixed scripts", "hi مرحبا", LanguageUnknown},
		{"empty string", "", LanguageUnknown},
		{"digits only", "12345", LanguageUnknown},
		{"punctuation only", "؟!...", LanguageUnknown},
		{"latin with digits", "room 101", LanguageEnglish},
		{"arabic with digits", "غرفة 101", LanguageArabic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			if got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContainsArabic(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hello", false},
		{"شكرا", true},
		{"what does كتاب mean?", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ContainsArabic(tt.text); got != tt.want {
				t.Errorf("ContainsArabic(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
