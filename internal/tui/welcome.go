package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tview"
)

// getWelcomeShortcuts returns the quick action chips using the configured keys
func (a *App) getWelcomeShortcuts() string {
	return fmt.Sprintf("[%s Help]  [%s Source]  [%s Bucket]  [%s Quit]",
		tview.Escape(keyLabel(a.Keys.Help, "?")),
		tview.Escape(keyLabel(a.Keys.Source, "s")),
		tview.Escape(keyLabel(a.Keys.Bucket, "b")),
		tview.Escape(keyLabel(a.Keys.Quit, "q")))
}

// buildWelcomeText is shown in the preview pane before the first listing arrives
func (a *App) buildWelcomeText(loading bool) string {
	var b strings.Builder

	b.WriteString(a.getColorTag("title") + "🪣 BucketUI[-]\n\n")
	b.WriteString("Browse S3-compatible buckets from the terminal.\n\n")
	b.WriteString("Quick actions:  " + a.getWelcomeShortcuts() + "\n\n")

	if loading {
		b.WriteString("⏳ Loading listing…\n")
		return b.String()
	}

	b.WriteString("Nothing is loaded. Check the status bar for errors and press ")
	b.WriteString(tview.Escape(keyLabel(a.Keys.Refresh, "R")))
	b.WriteString(" to retry.\n")
	return b.String()
}

// buildHelpText lists every key binding
func (a *App) buildHelpText() string {
	k := a.Keys
	lines := []struct {
		key, fallback, action string
	}{
		{k.ToggleItem, "space", "select / unselect object"},
		{k.SelectAll, "a", "select all / none"},
		{k.Download, "d", "download selected as zip"},
		{k.TogglePreview, "p", "show / hide previews"},
		{k.Source, "s", "switch source"},
		{k.Bucket, "b", "switch bucket"},
		{"enter", "enter", "open folder"},
		{k.Up, "backspace", "parent folder"},
		{k.NextPage, "]", "next page"},
		{k.PrevPage, "[", "previous page"},
		{k.Refresh, "R", "reload listing"},
		{k.Help, "?", "toggle help"},
		{k.Quit, "q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.getColorTag("header") + "Keys[-]\n\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", tview.Escape(keyLabel(l.key, l.fallback)), l.action))
	}
	return b.String()
}
