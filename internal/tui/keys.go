package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/ajramos/bucketui/internal/render"
	"github.com/ajramos/bucketui/internal/services"
)

// keyMatches reports whether event is the configured binding. Bindings are a
// single character or one of the names space, enter, backspace, tab, esc.
func keyMatches(binding string, event *tcell.EventKey) bool {
	if binding == "" || event == nil {
		return false
	}
	switch strings.ToLower(binding) {
	case "space":
		return event.Key() == tcell.KeyRune && event.Rune() == ' '
	case "enter":
		return event.Key() == tcell.KeyEnter
	case "backspace":
		return event.Key() == tcell.KeyBackspace || event.Key() == tcell.KeyBackspace2
	case "tab":
		return event.Key() == tcell.KeyTab
	case "esc":
		return event.Key() == tcell.KeyEscape
	}
	r, size := utf8.DecodeRuneInString(binding)
	if size != len(binding) {
		return false
	}
	return event.Key() == tcell.KeyRune && event.Rune() == r
}

// keyLabel returns how a binding is shown to the user
func keyLabel(binding, fallback string) string {
	if strings.TrimSpace(binding) == "" {
		return fallback
	}
	return binding
}

// keyHint renders a binding inline in dynamic-color text
func keyHint(binding, fallback string) string {
	return "<" + tview.Escape(keyLabel(binding, fallback)) + ">"
}

// bindKeys installs the global key handler
func (a *App) bindKeys() {
	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Pickers and help handle their own input
		if name, _ := a.Pages.GetFrontPage(); name != "main" {
			return event
		}
		if a.handleKey(event) {
			return nil
		}
		return event
	})
}

// handleKey runs the action bound to event and reports whether one ran
func (a *App) handleKey(event *tcell.EventKey) bool {
	keys := a.Keys
	switch {
	case keyMatches(keys.Quit, event):
		a.Stop()
	case keyMatches(keys.Help, event):
		a.toggleHelp()
	case keyMatches(keys.Refresh, event):
		a.refresh()
	case a.page == nil:
		// Everything else needs a loaded page
		return false
	case keyMatches(keys.ToggleItem, event):
		a.toggleCurrentItem()
	case keyMatches(keys.SelectAll, event):
		a.clickSelectAll()
	case keyMatches(keys.Download, event):
		a.clickDownload()
	case keyMatches(keys.TogglePreview, event):
		a.clickPreviewToggle()
	case keyMatches(keys.Source, event):
		a.openSourcePicker()
	case keyMatches(keys.Bucket, event):
		a.openBucketPicker()
	case keyMatches(keys.Up, event):
		a.goUp()
	case keyMatches(keys.NextPage, event):
		a.nextPage()
	case keyMatches(keys.PrevPage, event):
		a.previousPage()
	default:
		return false
	}
	return true
}

// toggleCurrentItem flips the checkbox of the row under the cursor
func (a *App) toggleCurrentItem() {
	cb := a.currentRow().checkboxFor()
	if cb == nil {
		return
	}
	a.page.Selection.Toggle(cb)
	a.renderPage()
}

func (a *App) clickSelectAll() {
	if a.page.SelectAll == nil {
		return
	}
	a.page.SelectAll.Click()
	a.renderPage()
}

func (a *App) clickDownload() {
	if a.page.Download == nil {
		return
	}
	if !a.page.Download.Click() {
		a.errorHandler.ShowWarning(a.ctx, "Nothing selected to download")
	}
}

func (a *App) clickPreviewToggle() {
	if a.page.PreviewToggle == nil {
		a.errorHandler.ShowInfo(a.ctx, "No previewable images in this listing")
		return
	}
	a.page.PreviewToggle.Click()
	a.renderPage()
}

// activateRow opens a folder, goes up for the parent row and toggles objects
func (a *App) activateRow() {
	r := a.currentRow()
	if r == nil || a.page == nil {
		return
	}
	if r.object != nil {
		a.toggleCurrentItem()
		return
	}
	a.page.Nav.Navigate(r.prefix, "")
}

func (a *App) goUp() {
	if a.listing == nil || a.listing.Prefix == "" {
		return
	}
	a.page.Nav.Navigate(a.listing.ParentPrefix, "")
}

func (a *App) nextPage() {
	if a.listing == nil || !a.listing.HasMore {
		a.errorHandler.ShowInfo(a.ctx, "Already on the last page")
		return
	}
	a.page.Nav.Navigate(a.listing.Prefix, a.listing.NextStack)
}

func (a *App) previousPage() {
	if a.listing == nil || !a.listing.HasPrevious() {
		a.errorHandler.ShowInfo(a.ctx, "Already on the first page")
		return
	}
	a.page.Nav.Navigate(a.listing.Prefix, a.listing.PreviousStack)
}

// refresh reloads the current listing, or retries the initial one
func (a *App) refresh() {
	if a.page == nil || a.page.Nav == nil {
		a.navigate(a.initial)
		return
	}
	a.page.Nav.Submit()
}

// downloadKeys writes the selected objects to an archive in the background
func (a *App) downloadKeys(keys []string) {
	if a.listing == nil {
		return
	}
	source, bucket := a.listing.Source, a.listing.Bucket
	a.errorHandler.ShowProgress(a.ctx, fmt.Sprintf("Downloading %s objects…", render.FormatCount(len(keys))))

	go func() {
		res, err := a.storage.DownloadObjects(a.ctx, source, bucket, keys)
		a.errorHandler.ClearProgress()
		switch {
		case errors.Is(err, services.ErrNoSelection):
			a.errorHandler.ShowWarning(a.ctx, "Nothing selected to download")
		case err != nil:
			a.errorHandler.ShowStorageError(a.ctx, "download", err, keyLabel(a.Keys.Download, "d"))
		case len(res.Skipped) > 0:
			a.errorHandler.ShowWarning(a.ctx, fmt.Sprintf("Saved %d files (%s) to %s, skipped %d",
				res.Files, render.FormatSize(res.Bytes), res.Path, len(res.Skipped)))
		default:
			a.errorHandler.ShowSuccess(a.ctx, fmt.Sprintf("Saved %d files (%s) to %s",
				res.Files, render.FormatSize(res.Bytes), res.Path))
		}
	}()
}
