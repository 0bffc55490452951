package suggest

import (
	"fmt"
	"strings"

	"github.com/csheth/docscout/internal/stager"
)

// Metadata carries just enough context for tailoring suggested questions.
type Metadata struct {
	FileName string
	Kind     stager.Kind
	Pages    int
}

// Build returns starter questions for the staged document. With no document it
// returns general prompts so the composer always has something to cycle.
func Build(meta Metadata) []string {
	name := strings.TrimSpace(meta.FileName)
	if name == "" {
		name = "this document"
	}

	switch meta.Kind {
	case stager.KindSpreadsheet:
		return []string{
			fmt.Sprintf("What columns or fields does %s contain?", name),
			"What is the total across all rows?",
			"Which entries stand out as outliers?",
			"Summarize the main trends in this data.",
		}
	case stager.KindText:
		return []string{
			fmt.Sprintf("Summarize %s in a few sentences.", name),
			"What are the key facts mentioned?",
			"List any dates, names, or figures referenced.",
		}
	case stager.KindDocument:
		questions := []string{
			fmt.Sprintf("What is %s about?", name),
			"What are the main conclusions?",
			"List the key points as bullets.",
			"What obligations or deadlines are mentioned?",
		}
		if meta.Pages > 5 {
			questions = append(questions, fmt.Sprintf("Give a section-by-section outline of all %d pages.", meta.Pages))
		}
		return questions
	default:
		return []string{
			"What is this document about?",
			"What are the key points?",
			"Summarize the main conclusions.",
		}
	}
}
