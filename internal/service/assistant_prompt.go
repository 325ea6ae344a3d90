package service

import (
	"fmt"
	"strings"

	"textrec-be/internal/entity"
)

// buildAssistantPrompt grounds the model on one recognized document.
// The corrected text is preferred when the grammar pass produced one;
// otherwise the raw OCR text is the only source.
func buildAssistantPrompt(doc *entity.RecognizedDocument, question string, arabic bool) string {
	var prompt strings.Builder

	prompt.WriteString("<document_text>\n")
	if doc.CorrectedText != nil {
		prompt.WriteString(*doc.CorrectedText)
	} else {
		prompt.WriteString(doc.RawText)
	}
	prompt.WriteString("\n</document_text>\n\n")

	if doc.AccuracyScore != nil || len(doc.ChangeNotes) > 0 {
		prompt.WriteString("<recognition_details>\n")
		if doc.AccuracyScore != nil {
			prompt.WriteString(fmt.Sprintf("Recognition accuracy: %.2f%%\n", *doc.AccuracyScore))
		}
		for _, note := range doc.ChangeNotes {
			prompt.WriteString(fmt.Sprintf("- %s\n", note))
		}
		prompt.WriteString("</recognition_details>\n\n")
	}

	if len(doc.History) > 0 {
		prompt.WriteString("<conversation_history>\n")
		for _, turn := range doc.History {
			prompt.WriteString(fmt.Sprintf("User: %s\n", turn.Question))
			prompt.WriteString(fmt.Sprintf("Assistant: %s\n", turn.Answer))
		}
		prompt.WriteString("</conversation_history>\n\n")
	}

	prompt.WriteString("<task_instructions>\n")
	prompt.WriteString("You are an assistant answering questions about a scanned document.\n")
	prompt.WriteString("Answer ONLY using the text in <document_text>.\n")
	prompt.WriteString("If the document does not contain the answer, say so plainly.\n")
	if arabic {
		prompt.WriteString("Answer in Arabic.\n")
	} else {
		prompt.WriteString("Answer in English.\n")
	}
	prompt.WriteString("</task_instructions>\n\n")

	prompt.WriteString(fmt.Sprintf("Question: %s", question))

	return prompt.String()
}
