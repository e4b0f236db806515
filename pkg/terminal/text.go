package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Box drawing characters - heavy.
const (
	BoxHeavyHorizontal  = "━"
	BoxHeavyVertical    = "┃"
	BoxHeavyTopLeft     = "┏"
	BoxHeavyTopRight    = "┓"
	BoxHeavyBottomLeft  = "┗"
	BoxHeavyBottomRight = "┛"
	BoxHorizontal       = "─"
)

// Progress bar characters.
const (
	ProgressFilled = "█"
	ProgressEmpty  = "░"
)

// HeaderPadding is the space around header content.
const HeaderPadding = 1

// DrawSeparator draws a thin horizontal separator line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawHeader draws a heavy-bordered section header with an optional
// right-aligned note.
//
//	┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ TITLE                     rightText ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func DrawHeader(title, rightText string, width int) string {
	titleWidth := text.RuneWidthWithoutEscSequences(title)
	rightWidth := text.RuneWidthWithoutEscSequences(rightText)

	width = max(width, titleWidth+rightWidth+2+HeaderPadding*2+1)
	innerWidth := width - 2
	contentWidth := innerWidth - HeaderPadding*2

	content := PadRight(title, contentWidth)
	if rightText != "" {
		content = title + strings.Repeat(" ", contentWidth-titleWidth-rightWidth) + rightText
	}

	pad := strings.Repeat(" ", HeaderPadding)

	return BoxHeavyTopLeft + strings.Repeat(BoxHeavyHorizontal, innerWidth) + BoxHeavyTopRight + "\n" +
		BoxHeavyVertical + pad + content + pad + BoxHeavyVertical + "\n" +
		BoxHeavyBottomLeft + strings.Repeat(BoxHeavyHorizontal, innerWidth) + BoxHeavyBottomRight
}

// DrawProgressBar draws a bar of the given width; value is clamped to [0, 1].
// Example: DrawProgressBar(0.7, 10) returns "███████░░░".
func DrawProgressBar(value float64, width int) string {
	if math.IsNaN(value) || value < 0 {
		value = 0
	}

	value = math.Min(value, 1)

	filled := int(value * float64(width))

	return strings.Repeat(ProgressFilled, filled) + strings.Repeat(ProgressEmpty, width-filled)
}

// DrawPercentBar draws a labeled percentage bar; percent is in [0, 100].
// Example: "Morning      ████████████░░░░░░░░   60.0%  (12)".
func DrawPercentBar(label string, percent float64, count, labelWidth, barWidth int) string {
	return fmt.Sprintf("%s %s %6.1f%%  (%d)",
		PadRight(label, labelWidth), DrawProgressBar(percent/100, barWidth), percent, count)
}

// PadRight pads s with spaces on the right to reach width display columns.
func PadRight(s string, width int) string {
	return text.Pad(s, width, ' ')
}

// TruncateWithEllipsis shortens s to maxWidth display columns.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if text.RuneWidthWithoutEscSequences(s) <= maxWidth {
		return s
	}

	return text.Trim(s, max(maxWidth-1, 0)) + "…"
}
