package prayer

import (
	"fmt"
	"strings"
)

// Label renders a countdown as Indonesian text, e.g. "1 jam 5 menit 30
// detik lagi". Hours are omitted when zero; minutes are omitted only
// when hours and minutes are both zero; seconds always appear.
func Label(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d jam", hours))
	}
	if hours > 0 || minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d menit", minutes))
	}
	parts = append(parts, fmt.Sprintf("%d detik", seconds))

	return strings.Join(parts, " ") + " lagi"
}
