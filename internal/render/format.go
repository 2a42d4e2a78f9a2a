package render

import (
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FormatSize renders a byte count with binary units ("2.0 KiB")
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatAge renders a timestamp relative to now ("3 days ago"); zero time renders as "-"
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// FormatTimestamp renders a timestamp in local time for the detail line
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatCount renders an integer with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Truncate shortens s to at most width display cells, ending with "…" when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// FitColumn truncates and pads s to exactly width display cells
func FitColumn(s string, width int) string {
	return runewidth.FillRight(Truncate(s, width), width)
}

// DisplayWidth returns the number of terminal cells s occupies
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// SanitizeName makes an object key safe to print in one table cell
func SanitizeName(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r == '\u200B' || r == '\u200C' || r == '\u200D' || r == '\uFEFF':
			// zero-width and BOM → drop
		case unicode.IsControl(r):
			b.WriteRune('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
