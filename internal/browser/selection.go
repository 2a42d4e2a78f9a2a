package browser

// SelectionSynchronizer keeps the "select all" control and the download
// button in line with the item checkboxes.
type SelectionSynchronizer struct {
	form      *SelectionForm
	selectAll *TriCheckbox
	download  *Button
}

// NewSelectionSynchronizer returns a synchronizer. Any argument may be nil.
func NewSelectionSynchronizer(form *SelectionForm, selectAll *TriCheckbox, download *Button) *SelectionSynchronizer {
	return &SelectionSynchronizer{form: form, selectAll: selectAll, download: download}
}

// Counts tallies the item checkboxes.
func (s *SelectionSynchronizer) Counts() SelectionCounts {
	if s.form == nil {
		return SelectionCounts{}
	}
	var c SelectionCounts
	for _, cb := range s.form.Items() {
		c.Total++
		if cb.Checked {
			c.Checked++
		}
	}
	return c
}

// SetAll checks or unchecks every item.
func (s *SelectionSynchronizer) SetAll(checked bool) {
	if s.form == nil {
		return
	}
	for _, cb := range s.form.Items() {
		cb.Checked = checked
	}
	s.OnItemToggled()
}

// OnItemToggled recomputes the aggregate display and the download state.
func (s *SelectionSynchronizer) OnItemToggled() {
	s.refreshAggregate()
	s.UpdateDownloadButtonState()
}

// HandleChange is the selection form's change listener. Only item checkboxes count.
func (s *SelectionSynchronizer) HandleChange(ev ChangeEvent) {
	if ev.Name() != KeysField {
		return
	}
	s.OnItemToggled()
}

// UpdateDownloadButtonState enables the download button iff something is checked.
func (s *SelectionSynchronizer) UpdateDownloadButtonState() {
	if s.download == nil || s.form == nil {
		return
	}
	s.download.Disabled = !s.Counts().DownloadEnabled()
}

func (s *SelectionSynchronizer) refreshAggregate() {
	if s.selectAll == nil || s.form == nil {
		return
	}
	state := s.Counts().Aggregate()
	s.selectAll.Checked = state == Checked
	s.selectAll.Indeterminate = state == Indeterminate
}

func (s *SelectionSynchronizer) wire() {
	if s.form == nil {
		return
	}
	if s.selectAll != nil {
		s.selectAll.OnChange(s.SetAll)
	}
	s.form.OnChange(s.HandleChange)
	if s.download != nil {
		s.download.OnClick(s.form.Submit)
	}
}
