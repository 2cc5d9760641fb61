package youtube

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Unknown is shown for missing durations, sizes and counts.
const Unknown = "Unknown"

// FormatDuration renders seconds as M:SS or H:MM:SS.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return Unknown
	}
	total := int64(seconds + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSize renders a byte count in IEC units (KiB, MiB, ...).
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return Unknown
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatCount renders counts with thousands separators.
func FormatCount(n int64) string {
	if n < 0 {
		return Unknown
	}
	return humanize.Comma(n)
}
