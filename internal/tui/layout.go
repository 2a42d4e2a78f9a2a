package tui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/ajramos/bucketui/internal/browser"
	"github.com/ajramos/bucketui/internal/render"
)

const (
	nameColumnWidth = 48
	thumbnailCols   = 40
	thumbnailRows   = 20
)

// initComponents initializes the main UI components
func (a *App) initComponents() {
	bg := a.currentTheme.Body.BgColor.Color()

	header := tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	header.SetBackgroundColor(bg)
	header.SetBorder(false)
	a.views["header"] = header

	// Listing is a Table to support per-row colors
	list := tview.NewTable().SetSelectable(true, false).SetFixed(1, 0)
	list.SetBackgroundColor(bg)
	list.SetBorder(true).
		SetBorderColor(a.currentTheme.Frame.FocusColor.Color()).
		SetBorderAttributes(tcell.AttrBold).
		SetTitle(" 🪣 Objects ").
		SetTitleColor(a.currentTheme.Frame.TitleColor.Color()).
		SetTitleAlign(tview.AlignCenter)
	list.SetSelectedFunc(func(row, column int) {
		a.activateRow()
	})
	list.SetSelectionChangedFunc(func(row, column int) {
		a.renderPreview()
	})
	a.views["list"] = list

	preview := tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetScrollable(true)
	preview.SetBackgroundColor(bg)
	preview.SetBorder(true).
		SetBorderColor(a.currentTheme.Frame.BorderColor.Color()).
		SetTitle(" Preview ").
		SetTitleColor(a.currentTheme.Frame.TitleColor.Color()).
		SetTitleAlign(tview.AlignCenter)
	preview.SetText(a.buildWelcomeText(true))
	a.views["preview"] = preview
}

// initViews mounts the layout into the page stack
func (a *App) initViews() {
	a.Pages.AddPage("main", a.createMainLayout(), true, true)
}

// createMainLayout creates the main application layout
func (a *App) createMainLayout() tview.Primitive {
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.SetBackgroundColor(a.currentTheme.Body.BgColor.Color())

	mainFlex.AddItem(a.views["header"], 2, 0, false)

	content := tview.NewFlex().SetDirection(tview.FlexColumn)
	content.AddItem(a.views["list"], 0, 3, true)
	content.AddItem(a.views["preview"], 0, 2, false)
	a.views["content"] = content
	mainFlex.AddItem(content, 0, 1, true)

	statusBar := a.createStatusBar()
	a.views["status"] = statusBar
	mainFlex.AddItem(statusBar, 1, 0, false)

	a.views["mainFlex"] = mainFlex
	return mainFlex
}

// createStatusBar creates the status bar
func (a *App) createStatusBar() *tview.TextView {
	status := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).
		SetText(a.statusBaseline())
	status.SetBackgroundColor(a.currentTheme.Body.BgColor.Color())
	return status
}

// renderPage redraws every widget from the current page
func (a *App) renderPage() {
	a.renderHeader()
	a.renderTable()
	a.renderPreview()
	a.refreshStatus()
}

// renderHeader draws location, source, bucket and action state
func (a *App) renderHeader() {
	header, ok := a.views["header"].(*tview.TextView)
	if !ok {
		return
	}
	if a.page == nil || a.listing == nil {
		header.SetText(a.getColorTag("title") + "BucketUI[-]")
		return
	}

	var b strings.Builder
	nav := a.page.Nav
	b.WriteString(a.getColorTag("title") + "BucketUI[-]  ")
	b.WriteString(fmt.Sprintf("%s %s[-]  ", keyHint(a.Keys.Source, "source"), tview.Escape(a.sourceLabel(nav.Source.Value))))

	bucket := tview.Escape(nav.Bucket.Value)
	if nav.Bucket.Disabled {
		bucket = a.getColorTag("disabled") + bucket + "[-]"
	}
	b.WriteString(fmt.Sprintf("%s %s  ", keyHint(a.Keys.Bucket, "bucket"), bucket))
	b.WriteString(a.breadcrumbText())
	b.WriteString("\n")

	counts := a.controllers.Selection.Counts()
	download := fmt.Sprintf("%s %s (%s)", keyHint(a.Keys.Download, "download"), a.page.Download.Label, render.FormatCount(counts.Checked))
	if a.page.Download.Disabled {
		download = a.getColorTag("disabled") + download + "[-]"
	}
	b.WriteString(download)

	if toggle := a.page.PreviewToggle; toggle != nil {
		b.WriteString(fmt.Sprintf("  %s %s", keyHint(a.Keys.TogglePreview, "previews"), toggle.Label))
	}
	if a.listing.HasPrevious() {
		b.WriteString(fmt.Sprintf("  %s prev", keyHint(a.Keys.PrevPage, "page")))
	}
	if a.listing.HasMore {
		b.WriteString(fmt.Sprintf("  %s next", keyHint(a.Keys.NextPage, "page")))
	}

	header.SetText(b.String())
}

func (a *App) breadcrumbText() string {
	parts := []string{a.getColorTag("folder") + "/[-]"}
	for _, crumb := range a.listing.Breadcrumbs {
		parts = append(parts, tview.Escape(crumb.Name)+"/")
	}
	return strings.Join(parts, "")
}

func (a *App) sourceLabel(name string) string {
	info, err := a.storage.ResolveSource(name)
	if err != nil {
		return name
	}
	return info.Label
}

// renderTable draws the listing rows and the select-all header
func (a *App) renderTable() {
	table, ok := a.views["list"].(*tview.Table)
	if !ok {
		return
	}
	row, _ := table.GetSelection()
	table.Clear()

	if a.page == nil {
		return
	}

	selectAll := a.page.SelectAll
	headers := []string{render.TriStateGlyph(selectAll.Checked, selectAll.Indeterminate), "Name", "Size", "Modified"}
	for col, h := range headers {
		cell := tview.NewTableCell(tview.Escape(h)).
			SetSelectable(false).
			SetTextColor(a.colorer.HeaderColor).
			SetAttributes(tcell.AttrBold)
		if col == 1 {
			cell.SetExpansion(1)
		}
		table.SetCell(0, col, cell)
	}

	previewsShown := a.page.PreviewToggle != nil && a.page.PreviewToggle.Pressed
	for i, r := range a.rows {
		checked := r.checkbox != nil && r.checkbox.Checked
		color := a.colorer.RowColor(r.kind, checked)

		box, size, modified := "", "", ""
		if r.checkbox != nil {
			box = render.CheckboxGlyph(checked)
		}
		name := r.name
		if r.object != nil {
			size = render.FormatSize(r.object.Size)
			modified = render.FormatAge(r.object.LastModified)
			if previewsShown && r.slot != nil {
				name = "▣ " + name
			}
		}

		cells := []string{box, render.Truncate(render.SanitizeName(name), nameColumnWidth), size, modified}
		for col, text := range cells {
			cell := tview.NewTableCell(tview.Escape(text)).SetTextColor(color)
			if col == 1 {
				cell.SetExpansion(1)
			}
			if col == 2 {
				cell.SetAlign(tview.AlignRight)
			}
			table.SetCell(i+1, col, cell)
		}
	}

	if len(a.rows) == 0 {
		table.SetCell(1, 1, tview.NewTableCell("(empty)").SetTextColor(a.colorer.DisabledColor).SetSelectable(false))
		return
	}
	if row < 1 {
		row = 1
	}
	if row > len(a.rows) {
		row = len(a.rows)
	}
	table.Select(row, 0)
}

// renderPreview fills the preview pane for the row under the cursor
func (a *App) renderPreview() {
	pane, ok := a.views["preview"].(*tview.TextView)
	if !ok {
		return
	}
	if a.page == nil {
		pane.SetText(a.buildWelcomeText(a.loading))
		return
	}
	if a.helpVisible {
		return
	}

	r := a.currentRow()
	switch {
	case r == nil:
		pane.SetText("")
	case r.object == nil:
		pane.SetText(a.getColorTag("folder") + tview.Escape(r.name) + "[-]\n\nPress Enter to open")
	default:
		pane.SetText(a.objectDetails(r))
	}
	pane.ScrollToBeginning()
}

func (a *App) objectDetails(r *listRow) string {
	obj := r.object
	var b strings.Builder
	b.WriteString(a.getColorTag("header") + tview.Escape(obj.Name) + "[-]\n")
	b.WriteString(fmt.Sprintf("Size: %s\n", render.FormatSize(obj.Size)))
	b.WriteString(fmt.Sprintf("Modified: %s\n", render.FormatTimestamp(obj.LastModified)))
	b.WriteString(fmt.Sprintf("Key: %s\n\n", tview.Escape(obj.Key)))

	if r.slot == nil {
		return b.String()
	}
	switch {
	case r.slot.Hidden:
		b.WriteString(a.getColorTag("disabled") + fmt.Sprintf("Previews hidden (%s to show)", keyLabel(a.Keys.TogglePreview, "p")) + "[-]")
	case a.thumbs[obj.Key] != "":
		b.WriteString(a.thumbs[obj.Key])
	default:
		b.WriteString(render.Placeholder(thumbnailCols, "waiting for preview…"))
	}
	return b.String()
}

// thumbnailSize returns the cell box a thumbnail is rendered into
func (a *App) thumbnailSize() (int, int) {
	if pane, ok := a.views["preview"].(*tview.TextView); ok {
		_, _, w, h := pane.GetInnerRect()
		// Leave room for the object details above the image
		if w > 0 && h > 6 {
			return w, h - 6
		}
	}
	return thumbnailCols, thumbnailRows
}

// checkboxFor returns the item checkbox of a row, nil for folders
func (r *listRow) checkboxFor() *browser.Checkbox {
	if r == nil {
		return nil
	}
	return r.checkbox
}
