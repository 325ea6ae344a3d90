package constant

// CannedReplies maps a normalized (trimmed, lowercased) question to a
// fixed answer. A hit here never reaches the text-generation service.
// Keys cover the greeting/thanks phrases in both scripts the OCR
// pipeline recognizes.
var CannedReplies = map[string]string{
	// English
	"hello":     "Hello! Ask me anything about your recognized document.",
	"hi":        "Hi there! Ask me anything about your recognized document.",
	"hey":       "Hey! Ask me anything about your recognized document.",
	"thanks":    "You're welcome! Happy to help with your document.",
	"thank you": "You're welcome! Happy to help with your document.",
	"bye":       "Goodbye! Come back whenever you need help with a document.",

	// Arabic
	"مرحبا":        "مرحبا! اسألني أي شيء عن المستند الذي تم التعرف عليه.",
	"اهلا":         "أهلا بك! اسألني أي شيء عن المستند الذي تم التعرف عليه.",
	"أهلا":         "أهلا بك! اسألني أي شيء عن المستند الذي تم التعرف عليه.",
	"السلام عليكم": "وعليكم السلام! اسألني أي شيء عن المستند الذي تم التعرف عليه.",
	"شكرا":         "عفوا! يسعدني مساعدتك في مستندك.",
	"شكرا جزيلا":   "عفوا! يسعدني مساعدتك في مستندك.",
	"مع السلامة":   "مع السلامة! عد متى احتجت مساعدة في مستند آخر.",
}

const (
	// FallbackAnswerEnglish is the deterministic local reply used when
	// the text-generation service is unreachable or unconfigured.
	// Placeholders: question, corrections summary, accuracy summary.
	FallbackAnswerEnglish = "I couldn't reach the language model right now, so here is what I know about your document. You asked: %q. Corrections applied: %s. Recognition accuracy: %s."

	// FallbackAnswerArabic is the same reply for Arabic questions.
	FallbackAnswerArabic = "تعذر الوصول إلى نموذج اللغة حاليا، لكن هذا ما أعرفه عن مستندك. سؤالك: %q. التصحيحات المطبقة: %s. دقة التعرف: %s."

	// NoCorrectionsEnglish / NoAccuracyEnglish fill the fallback
	// template when the grammar step never ran.
	NoCorrectionsEnglish = "none recorded"
	NoAccuracyEnglish    = "not computed"
	NoCorrectionsArabic  = "لا توجد تصحيحات مسجلة"
	NoAccuracyArabic     = "غير محسوبة"
)

const (
	RecognitionCompletedTopic = "RECOGNITION_COMPLETED"
)
