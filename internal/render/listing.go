package render

import (
	"github.com/derailed/tcell/v2"

	"github.com/ajramos/bucketui/internal/config"
)

// RowKind classifies a listing row for coloring
type RowKind int

const (
	RowFile RowKind = iota
	RowFolder
	RowPreviewable
	RowParent
)

// ListingColorer picks colors for listing rows
type ListingColorer struct {
	HeaderColor      tcell.Color
	FolderColor      tcell.Color
	FileColor        tcell.Color
	CheckedColor     tcell.Color
	PreviewableColor tcell.Color
	DisabledColor    tcell.Color
}

// NewListingColorer creates a colorer with default colors
func NewListingColorer() *ListingColorer {
	lc := &ListingColorer{}
	lc.UpdateFromStyles(config.DefaultColors())
	return lc
}

// UpdateFromStyles updates colors from configuration
func (lc *ListingColorer) UpdateFromStyles(colors *config.ColorsConfig) {
	if colors == nil {
		return
	}
	lc.HeaderColor = colors.Listing.HeaderColor.Color()
	lc.FolderColor = colors.Listing.FolderColor.Color()
	lc.FileColor = colors.Listing.FileColor.Color()
	lc.CheckedColor = colors.Listing.CheckedColor.Color()
	lc.PreviewableColor = colors.Listing.PreviewableColor.Color()
	lc.DisabledColor = colors.Listing.DisabledColor.Color()
}

// RowColor returns the name color for a row
func (lc *ListingColorer) RowColor(kind RowKind, checked bool) tcell.Color {
	if checked {
		return lc.CheckedColor
	}
	switch kind {
	case RowFolder, RowParent:
		return lc.FolderColor
	case RowPreviewable:
		return lc.PreviewableColor
	default:
		return lc.FileColor
	}
}

// CheckboxGlyph renders an item checkbox
func CheckboxGlyph(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// TriStateGlyph renders the "select all" checkbox
func TriStateGlyph(checked, indeterminate bool) string {
	switch {
	case indeterminate:
		return "[-]"
	case checked:
		return "[x]"
	default:
		return "[ ]"
	}
}
