package document

import (
	"strings"
)

const textWidth = 80

// RenderText renders the document as plain text wrapped at 80 columns.
func RenderText(doc Document) string {
	var b strings.Builder
	for i, block := range doc.Blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		if block.Title != "" {
			b.WriteString(block.Title)
			b.WriteString("\n")
			if block.Kind == BlockHeader {
				b.WriteString(strings.Repeat("=", len(block.Title)))
				b.WriteString("\n")
			}
		}
		if block.Paragraph != "" {
			for _, line := range wrap(block.Paragraph, textWidth) {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		bullet := block.Kind == BlockIncluded || block.Kind == BlockExcluded || block.Kind == BlockPlans
		for _, item := range block.Items {
			if bullet {
				b.WriteString("  - ")
			}
			b.WriteString(item)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// wrap splits s into lines of at most width runes, breaking on spaces.
// Words longer than width are kept whole.
func wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
