package textproc

import (
	"fmt"
	"math"
	"sort"
)

// Result is the output of applying a set of edits to a text.
type Result struct {
	CorrectedText string
	Accuracy      float64
	Notes         []string
}

// Apply reconstructs a corrected text from the original and the
// grammar service's edits.
//
// Edits are applied in descending start-offset order. Splicing a
// string invalidates every offset to the right of the splice point as
// soon as the replacement length differs from the replaced span, so
// processing right-to-left keeps each remaining edit's recorded
// offset valid against the untouched left portion. Spans that overlap
// can still corrupt each other; that limitation is inherent to the
// offset-based edit schema and is covered by tests rather than
// resolved here.
func Apply(original string, edits []Edit) Result {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	corrected := []rune(original)
	notes := newNoteSet()

	for _, edit := range sorted {
		if !edit.HasReplacement {
			if edit.Message != "" {
				notes.add(edit.Message)
			}
			continue
		}

		offset := edit.Offset
		length := edit.Length
		if offset < 0 || length < 0 || offset > len(corrected) {
			notes.add("skipped: out-of-range")
			continue
		}
		if offset+length > len(corrected) {
			length = len(corrected) - offset
		}

		span := string(corrected[offset : offset+length])
		spliced := make([]rune, 0, len(corrected)-length+len([]rune(edit.Replacement)))
		spliced = append(spliced, corrected[:offset]...)
		spliced = append(spliced, []rune(edit.Replacement)...)
		spliced = append(spliced, corrected[offset+length:]...)
		corrected = spliced

		notes.add(fmt.Sprintf("Corrected %q to %q - %s", span, edit.Replacement, reasonFor(edit.Category)))
	}

	correctedText := string(corrected)

	return Result{
		CorrectedText: correctedText,
		Accuracy:      AccuracyScore(original, correctedText),
		Notes:         notes.values(),
	}
}

// AccuracyScore is the normalized similarity between two texts as a
// percentage in [0,100], rounded to two decimals. Two empty strings
// score 100.
func AccuracyScore(original, corrected string) float64 {
	a := []rune(original)
	b := []rune(corrected)

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 100
	}

	distance := levenshtein(a, b)
	score := (1 - float64(distance)/float64(longest)) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return math.Round(score*100) / 100
}

// noteSet keeps note strings unique while preserving insertion order.
type noteSet struct {
	seen  map[string]struct{}
	notes []string
}

func newNoteSet() *noteSet {
	return &noteSet{seen: make(map[string]struct{})}
}

func (s *noteSet) add(note string) {
	if _, ok := s.seen[note]; ok {
		return
	}
	s.seen[note] = struct{}{}
	s.notes = append(s.notes, note)
}

func (s *noteSet) values() []string {
	if s.notes == nil {
		return []string{}
	}
	return s.notes
}
