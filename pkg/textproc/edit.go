package textproc

// Edit is a single proposed replacement against the original text.
// Offset and Length are rune positions in the original text's
// indexing. An edit without a replacement candidate contributes a
// note only and never touches the text.
type Edit struct {
	Offset         int
	Length         int
	Replacement    string
	HasReplacement bool
	Message        string
	Category       string
}

// categoryReasons maps a grammar-service classification tag to the
// human phrase used in change notes.
var categoryReasons = map[string]string{
	"misspelling":   "spelling fix",
	"typographical": "typography fix",
	"grammar":       "grammar fix",
	"style":         "style improvement",
	"punctuation":   "punctuation fix",
	"casing":        "capitalization fix",
	"whitespace":    "spacing fix",
	"duplication":   "removed duplication",
}

func reasonFor(category string) string {
	if reason, ok := categoryReasons[category]; ok {
		return reason
	}
	return "text correction"
}
