package outwriter

import (
	"os"

	"github.com/huangsam/awrlens/internal/contract"
	"golang.org/x/term"
)

// Text column limits.
const (
	minTextWidth  = 20
	maxTextWidth  = 100
	fallbackWidth = 80 // Conservative default for narrow terminals and CI
	tablePadding  = 20 // borders, separators and padding
)

// terminalWidth returns the width override or the detected terminal width.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return fallbackWidth
	}
	return detected
}

// GetMaxTableTextWidth calculates the room left for a free-text column when the
// other columns of a table need fixedWidth characters.
func GetMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	available := terminalWidth(cfg) - fixedWidth - tablePadding
	if available < minTextWidth {
		return minTextWidth
	}
	if available > maxTextWidth {
		return maxTextWidth
	}
	return available
}

// truncateText shortens s to width runes with a trailing ellipsis.
func truncateText(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width || width <= 3 {
		return s
	}
	return string(runes[:width-3]) + "..."
}
