package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders done out of total as a bar like [████░░░░] 2/4 done.
// The bar is green once every task is done, yellow past half, red below.
func RenderProgress(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	done = max(0, min(done, total))

	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleRed
	switch {
	case total > 0 && done == total:
		style = StyleGreen
	case total > 0 && 2*done >= total:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d done", style.Render(bar), done, total)
}
