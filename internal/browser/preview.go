package browser

const (
	// ShowPreviewsLabel is the toggle label while previews are hidden.
	ShowPreviewsLabel = "Show previews"
	// HidePreviewsLabel is the toggle label while previews are shown.
	HidePreviewsLabel = "Hide previews"
)

// PreviewController shows and hides thumbnails and loads each one at most once.
type PreviewController struct {
	toggle *ToggleButton
	slots  []*PreviewSlot
	pref   Preference
}

// NewPreviewController returns a controller. toggle and pref may be nil.
func NewPreviewController(toggle *ToggleButton, slots []*PreviewSlot, pref Preference) *PreviewController {
	return &PreviewController{toggle: toggle, slots: slots, pref: pref}
}

// Enabled reports the displayed state of the toggle.
func (p *PreviewController) Enabled() bool {
	return p.toggle != nil && p.toggle.Pressed
}

// ApplyPreviewState shows or hides every preview and stores the choice.
// Images get their source the first time they are shown; hiding keeps them loaded.
func (p *PreviewController) ApplyPreviewState(enabled bool) {
	if p.toggle == nil {
		return
	}

	p.toggle.Pressed = enabled
	if enabled {
		p.toggle.Label = HidePreviewsLabel
	} else {
		p.toggle.Label = ShowPreviewsLabel
	}

	for _, slot := range p.slots {
		if slot == nil {
			continue
		}
		slot.Hidden = !enabled
		if !enabled || slot.Image == nil || slot.Image.Loaded {
			continue
		}
		slot.Image.Loaded = true
		slot.Image.SetSource(slot.SourceURL)
	}

	if p.pref != nil {
		p.pref.Set(enabled)
	}
}

// HandleClick flips the displayed state.
func (p *PreviewController) HandleClick() {
	if p.toggle == nil {
		return
	}
	p.ApplyPreviewState(!p.toggle.Pressed)
}

// Bootstrap applies the stored preference once and then listens for clicks.
func (p *PreviewController) Bootstrap() {
	if p.toggle == nil {
		return
	}
	enabled := false
	if p.pref != nil {
		enabled = p.pref.Get()
	}
	p.ApplyPreviewState(enabled)
	p.toggle.OnClick(p.HandleClick)
}
