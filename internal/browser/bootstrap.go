package browser

import "github.com/rs/zerolog"

// Deps are the collaborators a page needs.
type Deps struct {
	// Previews stores the preview mode. Nil keeps it for this page only.
	Previews Preference
	// Scheduler runs the deferred re-enable of the bucket selector. Nil runs it inline.
	Scheduler Scheduler
	Logger    zerolog.Logger
}

// Controllers are the wired controllers of one page.
type Controllers struct {
	Navigation *NavigationController
	Selection  *SelectionSynchronizer
	Preview    *PreviewController
}

// Bootstrap wires every control present on page and establishes the initial state.
// Call it once per page.
func Bootstrap(page *Page, deps Deps) *Controllers {
	if page == nil {
		page = &Page{}
	}

	c := &Controllers{
		Navigation: NewNavigationController(page.Nav, deps.Scheduler, deps.Logger),
		Selection:  NewSelectionSynchronizer(page.Selection, page.SelectAll, page.Download),
		Preview:    NewPreviewController(page.PreviewToggle, page.Previews, deps.Previews),
	}

	c.Navigation.wire()
	c.Selection.wire()

	c.Selection.UpdateDownloadButtonState()
	c.Selection.refreshAggregate()
	c.Preview.Bootstrap()

	counts := c.Selection.Counts()
	deps.Logger.Debug().
		Int("items", counts.Total).
		Int("checked", counts.Checked).
		Bool("previews", c.Preview.Enabled()).
		Msg("page bootstrapped")

	return c
}
