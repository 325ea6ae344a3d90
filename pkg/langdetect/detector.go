package langdetect

// Language is the coarse language category assigned to a text blob.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageArabic  Language = "Arabic"
	LanguageUnknown Language = "Unknown"
)

// Detect classifies text by character-set presence: Arabic-block only
// maps to Arabic, Latin letters only to English, everything else
// (mixed scripts, digits, empty input) to Unknown.
func Detect(text string) Language {
	hasArabic := false
	hasLatin := false

	for _, r := range text {
		switch {
		case isArabic(r):
			hasArabic = true
		case isLatin(r):
			hasLatin = true
		}
		if hasArabic && hasLatin {
			return LanguageUnknown
		}
	}

	if hasArabic {
		return LanguageArabic
	}
	if hasLatin {
		return LanguageEnglish
	}
	return LanguageUnknown
}

// ContainsArabic reports whether any rune falls in the Arabic Unicode
// block. Used by the assistant to pick the reply language of a
// question independently of the document language.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if isArabic(r) {
			return true
		}
	}
	return false
}

func isArabic(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

func isLatin(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
