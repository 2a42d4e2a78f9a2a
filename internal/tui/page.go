package tui

import (
	"errors"

	"github.com/derailed/tview"

	"github.com/ajramos/bucketui/internal/browser"
	"github.com/ajramos/bucketui/internal/render"
	"github.com/ajramos/bucketui/internal/services"
)

// listRow is one selectable line of the listing table
type listRow struct {
	kind     render.RowKind
	name     string
	prefix   string // folder and parent rows
	object   *services.Object
	checkbox *browser.Checkbox
	slot     *browser.PreviewSlot
}

// buildPage turns a listing into the controls of a new page and the table rows
// projecting them. Nothing is wired here; browser.Bootstrap does that.
func (a *App) buildPage(listing *services.Listing, sources []services.SourceInfo, buckets []services.BucketSummary, previews map[string]string) (*browser.Page, []listRow) {
	sourceNames := make([]string, 0, len(sources))
	for _, s := range sources {
		sourceNames = append(sourceNames, s.Name)
	}
	bucketNames := make([]string, 0, len(buckets))
	for _, b := range buckets {
		bucketNames = append(bucketNames, b.Name)
	}

	page := &browser.Page{
		Nav: &browser.NavForm{
			Source:     &browser.Select{Name: "source", Value: listing.Source, Options: sourceNames},
			Bucket:     &browser.Select{Name: "bucket", Value: listing.Bucket, Options: bucketNames},
			Prefix:     &browser.Field{Name: "prefix", Value: listing.Prefix},
			TokenStack: &browser.Field{Name: "token_stack", Value: listing.CurrentStack},
		},
		Selection: &browser.SelectionForm{},
		SelectAll: &browser.TriCheckbox{},
		Download:  &browser.Button{Label: "Download selected", Disabled: true},
	}
	page.Nav.OnSubmit(a.navigate)
	page.Selection.OnSubmit(a.downloadKeys)

	var rows []listRow
	if listing.Prefix != "" {
		rows = append(rows, listRow{kind: render.RowParent, name: "..", prefix: listing.ParentPrefix})
	}
	for _, f := range listing.Folders {
		rows = append(rows, listRow{kind: render.RowFolder, name: f.Name + "/", prefix: f.Prefix})
	}

	for i := range listing.Objects {
		obj := &listing.Objects[i]
		row := listRow{
			kind:     render.RowFile,
			name:     obj.Name,
			object:   obj,
			checkbox: page.Selection.Add(&browser.Checkbox{Name: browser.KeysField, Value: obj.Key}),
		}
		if obj.Previewable {
			row.kind = render.RowPreviewable
			row.slot = &browser.PreviewSlot{
				Key:       obj.Key,
				SourceURL: previews[obj.Key],
				Hidden:    true,
				Image:     &browser.Image{},
			}
			page.Previews = append(page.Previews, row.slot)
		}
		rows = append(rows, row)
	}

	// The toggle is only rendered for listings that have something to preview
	if len(page.Previews) > 0 {
		page.PreviewToggle = &browser.ToggleButton{Label: browser.ShowPreviewsLabel}
	}

	return page, rows
}

// currentRow returns the row under the table cursor, or nil
func (a *App) currentRow() *listRow {
	table, ok := a.views["list"].(*tview.Table)
	if !ok {
		return nil
	}
	r, _ := table.GetSelection()
	if r < 1 || r-1 >= len(a.rows) {
		return nil
	}
	return &a.rows[r-1]
}

func thumbnailErrorText(err error) string {
	switch {
	case errors.Is(err, services.ErrPreviewUnsupported):
		return "preview not available for this format"
	case errors.Is(err, services.ErrPreviewTooLarge):
		return "image too large to preview"
	case errors.Is(err, services.ErrAccessDenied):
		return "preview access denied"
	default:
		return "preview failed"
	}
}
