package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders closed of total as a bar like [████░░░░] 3/6.
// The bar is green when everything is closed, yellow past half and red below.
func RenderProgress(closed, total, width int) string {
	if width < 2 {
		width = 2
	}
	if total <= 0 {
		return fmt.Sprintf("[%s] %s", StyleDim.Render(strings.Repeat(emptyBlock, width)), Dim("no tasks"))
	}
	if closed < 0 {
		closed = 0
	}
	if closed > total {
		closed = total
	}

	filled := closed * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case closed*2 < total:
		style = StyleRed
	case closed < total:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), closed, total)
}
