package tui

import (
	"fmt"
	"strings"

	"github.com/ajramos/bucketui/internal/render"
)

// statusBaseline is the status bar text shown when no message is active
func (a *App) statusBaseline() string {
	parts := []string{"BucketUI"}

	if a.listing != nil {
		if a.controllers != nil && a.controllers.Selection != nil {
			counts := a.controllers.Selection.Counts()
			parts = append(parts, fmt.Sprintf("%s/%s selected",
				render.FormatCount(counts.Checked), render.FormatCount(counts.Total)))
		}
		if a.listing.HasPrevious() || a.listing.HasMore {
			parts = append(parts, fmt.Sprintf("page %d", a.pageNumber()))
		}
	}

	parts = append(parts,
		fmt.Sprintf("%s help", keyLabel(a.Keys.Help, "?")),
		fmt.Sprintf("%s quit", keyLabel(a.Keys.Quit, "q")),
	)
	return strings.Join(parts, " • ")
}

// refreshStatus redraws the status bar baseline
func (a *App) refreshStatus() {
	if a.errorHandler != nil {
		a.errorHandler.RefreshBaseline()
	}
}

// GetErrorHandler returns the status bar feedback helper
func (a *App) GetErrorHandler() *ErrorHandler {
	return a.errorHandler
}
