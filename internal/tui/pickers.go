package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	sourcePickerPage = "sourcePicker"
	bucketPickerPage = "bucketPicker"
	helpPage         = "help"
)

// centered wraps p in a fixed-size box in the middle of the screen
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// pickerItem is one entry of a picker list
type pickerItem struct {
	value     string
	primary   string
	secondary string
}

// showPicker opens a list modal and calls choose with the picked value
func (a *App) showPicker(page, title string, items []pickerItem, current string, choose func(value string)) {
	list := tview.NewList().ShowSecondaryText(true)
	list.SetBorder(true).
		SetBorderColor(a.currentTheme.Frame.FocusColor.Color()).
		SetTitle(title).
		SetTitleColor(a.currentTheme.Frame.TitleColor.Color()).
		SetTitleAlign(tview.AlignCenter)
	list.SetMainTextColor(a.currentTheme.Body.FgColor.Color())
	list.SetSecondaryTextColor(a.currentTheme.Listing.DisabledColor.Color())

	closePicker := func() {
		a.Pages.RemovePage(page)
		a.SetFocus(a.views["list"])
	}

	for i, item := range items {
		value := item.value
		list.AddItem(tview.Escape(item.primary), tview.Escape(item.secondary), 0, func() {
			closePicker()
			choose(value)
		})
		if item.value == current {
			list.SetCurrentItem(i)
		}
	}
	list.SetDoneFunc(closePicker)
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if keyMatches(a.Keys.Quit, event) {
			closePicker()
			return nil
		}
		return event
	})

	height := len(items)*2 + 2
	if height > 20 {
		height = 20
	}
	a.Pages.AddPage(page, centered(list, 50, height), true, true)
	a.SetFocus(list)
}

// openSourcePicker lets the user switch to another storage source
func (a *App) openSourcePicker() {
	nav := a.page.Nav
	if nav == nil || nav.Source == nil {
		return
	}
	if nav.Source.Disabled {
		a.errorHandler.ShowWarning(a.ctx, "Source selection is not available right now")
		return
	}

	var items []pickerItem
	for _, s := range a.storage.ListSources() {
		secondary := "default bucket: " + s.DefaultBucket
		if s.IsDefault {
			secondary += " (default source)"
		}
		items = append(items, pickerItem{value: s.Name, primary: s.Label, secondary: secondary})
	}

	source := nav.Source
	a.showPicker(sourcePickerPage, " Sources ", items, source.Value, func(value string) {
		if source.Choose(value) {
			a.renderHeader()
		}
	})
}

// openBucketPicker lets the user switch bucket within the current source
func (a *App) openBucketPicker() {
	nav := a.page.Nav
	if nav == nil || nav.Bucket == nil {
		return
	}
	if nav.Bucket.Disabled {
		a.errorHandler.ShowWarning(a.ctx, "Bucket list is updating, try again in a moment")
		return
	}

	items := make([]pickerItem, 0, len(nav.Bucket.Options))
	for _, name := range nav.Bucket.Options {
		items = append(items, pickerItem{value: name, primary: name})
	}

	bucket := nav.Bucket
	a.showPicker(bucketPickerPage, " Buckets ", items, bucket.Value, func(value string) {
		if bucket.Choose(value) {
			a.renderHeader()
		}
	})
}

// toggleHelp shows or hides the key binding overlay
func (a *App) toggleHelp() {
	if a.helpVisible {
		a.Pages.RemovePage(helpPage)
		a.helpVisible = false
		a.SetFocus(a.views["list"])
		return
	}

	help := tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	help.SetBorder(true).
		SetBorderColor(a.currentTheme.Frame.FocusColor.Color()).
		SetTitle(" Help ").
		SetTitleColor(a.currentTheme.Frame.TitleColor.Color()).
		SetTitleAlign(tview.AlignCenter)
	help.SetText(a.buildHelpText())
	help.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || keyMatches(a.Keys.Help, event) || keyMatches(a.Keys.Quit, event) {
			a.toggleHelp()
			return nil
		}
		return event
	})

	a.helpVisible = true
	a.Pages.AddPage(helpPage, centered(help, 60, 22), true, true)
	a.SetFocus(help)
}
