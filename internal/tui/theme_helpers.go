package tui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/ajramos/bucketui/internal/config"
)

// applyTheme installs colors as the active theme and the tview defaults
func (a *App) applyTheme(colors *config.ColorsConfig) {
	if colors == nil {
		colors = config.DefaultColors()
	}
	a.currentTheme = colors
	a.colorer.UpdateFromStyles(colors)

	tview.Styles.PrimitiveBackgroundColor = colors.Body.BgColor.Color()
	tview.Styles.ContrastBackgroundColor = colors.Frame.FocusColor.Color()
	tview.Styles.BorderColor = colors.Frame.BorderColor.Color()
	tview.Styles.TitleColor = colors.Frame.TitleColor.Color()
	tview.Styles.PrimaryTextColor = colors.Body.FgColor.Color()
	tview.Styles.SecondaryTextColor = colors.Listing.HeaderColor.Color()
}

// getStatusColor returns theme-aware status message colors
func (a *App) getStatusColor(level string) tcell.Color {
	if a == nil || a.currentTheme == nil {
		switch level {
		case "error":
			return tcell.ColorRed
		case "success":
			return tcell.ColorGreen
		case "warning":
			return tcell.ColorYellow
		default:
			return tcell.ColorBlue
		}
	}

	switch level {
	case "error":
		return a.currentTheme.Status.Error.Color()
	case "success":
		return a.currentTheme.Status.Success.Color()
	case "warning":
		return a.currentTheme.Status.Warning.Color()
	default:
		return a.currentTheme.Status.Info.Color()
	}
}

// colorTag returns a tview color tag for a theme color
func colorTag(c config.Color) string {
	return "[" + c.String() + "]"
}

// getColorTag returns theme-aware color tags for text markup
func (a *App) getColorTag(purpose string) string {
	theme := a.currentTheme
	if theme == nil {
		theme = config.DefaultColors()
	}
	switch purpose {
	case "title":
		return colorTag(theme.Body.LogoColor)
	case "header":
		return colorTag(theme.Listing.HeaderColor)
	case "folder":
		return colorTag(theme.Listing.FolderColor)
	case "disabled":
		return colorTag(theme.Listing.DisabledColor)
	case "checked":
		return colorTag(theme.Listing.CheckedColor)
	case "warning":
		return colorTag(theme.Status.Warning)
	default:
		return colorTag(theme.Body.FgColor)
	}
}
