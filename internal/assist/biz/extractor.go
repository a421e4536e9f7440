package biz

import (
	"strings"

	"github.com/marketx/seller-assist/internal/model"
)

// ExtractSections extracts structured sections from markdown text.
//
// Level-2 headings ("## ") open a new section, level-3 headings ("### ") open
// a new subsection within the current section, and the top-level document
// title ("# ") is discarded. A buffered block is emitted only when a section
// title is set and its trimmed body is non-empty. When the document has no
// headings at all, the entire trimmed text becomes a single "General" section
// spanning all lines.
func ExtractSections(markdownText string) []model.Section {
	lines := strings.Split(markdownText, "\n")

	var sections []model.Section
	var currentSection, currentSubsection string
	var buffer []string
	startLine := 0

	flush := func(endLine int) {
		if currentSection != "" && len(buffer) > 0 {
			text := strings.TrimSpace(strings.Join(buffer, "\n"))
			if text != "" {
				start := startLine
				if start == 0 {
					start = 1
				}
				sections = append(sections, model.Section{
					Section:    currentSection,
					Subsection: currentSubsection,
					Text:       text,
					StartLine:  start,
					EndLine:    endLine,
				})
			}
		}
		buffer = nil
		startLine = 0
	}

	for i, line := range lines {
		lineNo := i + 1
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "## ") {
			flush(lineNo - 1)
			currentSection = strings.TrimSpace(stripped[3:])
			currentSubsection = ""
			startLine = lineNo + 1
			continue
		}

		if strings.HasPrefix(stripped, "### ") {
			flush(lineNo - 1)
			currentSubsection = strings.TrimSpace(stripped[4:])
			startLine = lineNo + 1
			continue
		}

		if strings.HasPrefix(stripped, "# ") {
			continue // ignore top-level doc title
		}

		buffer = append(buffer, line)
	}

	flush(len(lines))

	if len(sections) == 0 {
		sections = append(sections, model.Section{
			Section:   "General",
			Text:      strings.TrimSpace(markdownText),
			StartLine: 1,
			EndLine:   len(lines),
		})
	}

	return sections
}
