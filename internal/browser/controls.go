// Package browser is the interaction model of one listing screen.
//
// A Page is rebuilt from scratch after every navigation. Its controls are
// plain structs with listeners; the controllers in this package keep them
// consistent with each other and the terminal UI only projects them.
package browser

// KeysField is the name shared by every item checkbox of a selection form.
const KeysField = "keys"

// Field is a named text value carried by a form.
type Field struct {
	Name  string
	Value string
}

// Select is a single-choice control.
type Select struct {
	Name     string
	Value    string
	Options  []string
	Disabled bool

	onChange []func()
}

// OnChange registers fn to run after the user picks a different value.
func (s *Select) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Choose picks value as the user would. It does nothing and returns false when the
// control is disabled or the value is already selected.
func (s *Select) Choose(value string) bool {
	if s.Disabled || s.Value == value {
		return false
	}
	s.Value = value
	for _, fn := range s.onChange {
		fn()
	}
	return true
}

// Checkbox is a two-state control inside a selection form.
type Checkbox struct {
	Name    string
	Value   string
	Checked bool
}

// ChangeEvent reports which control of a form changed.
type ChangeEvent struct {
	Target *Checkbox
}

// Name returns the name of the changed control, or "" if unknown.
func (e ChangeEvent) Name() string {
	if e.Target == nil {
		return ""
	}
	return e.Target.Name
}

// SelectionForm holds the item checkboxes and submits the checked keys.
type SelectionForm struct {
	Controls []*Checkbox

	listeners []func(ChangeEvent)
	onSubmit  func(keys []string)
}

// Add appends a control and returns it.
func (f *SelectionForm) Add(cb *Checkbox) *Checkbox {
	f.Controls = append(f.Controls, cb)
	return cb
}

// OnChange registers a listener for every control change on the form.
func (f *SelectionForm) OnChange(fn func(ChangeEvent)) {
	f.listeners = append(f.listeners, fn)
}

// OnSubmit sets the handler that receives the checked keys.
func (f *SelectionForm) OnSubmit(fn func(keys []string)) {
	f.onSubmit = fn
}

// Items returns the item checkboxes, skipping unrelated controls.
func (f *SelectionForm) Items() []*Checkbox {
	items := make([]*Checkbox, 0, len(f.Controls))
	for _, cb := range f.Controls {
		if cb.Name == KeysField {
			items = append(items, cb)
		}
	}
	return items
}

// Toggle flips cb as a user click would and dispatches the change.
func (f *SelectionForm) Toggle(cb *Checkbox) {
	if cb == nil {
		return
	}
	cb.Checked = !cb.Checked
	f.dispatch(ChangeEvent{Target: cb})
}

func (f *SelectionForm) dispatch(ev ChangeEvent) {
	for _, fn := range f.listeners {
		fn(ev)
	}
}

// CheckedKeys returns the values of the checked item checkboxes in display order.
func (f *SelectionForm) CheckedKeys() []string {
	var keys []string
	for _, cb := range f.Items() {
		if cb.Checked {
			keys = append(keys, cb.Value)
		}
	}
	return keys
}

// Submit hands the checked keys to the submit handler.
func (f *SelectionForm) Submit() {
	if f.onSubmit != nil {
		f.onSubmit(f.CheckedKeys())
	}
}

// TriCheckbox is the "select all" control. Indeterminate is a display state
// layered over Checked.
type TriCheckbox struct {
	Checked       bool
	Indeterminate bool

	onChange []func(checked bool)
}

// OnChange registers fn to receive the checked value after each click.
func (t *TriCheckbox) OnChange(fn func(checked bool)) {
	t.onChange = append(t.onChange, fn)
}

// Click clears the indeterminate display and flips Checked.
func (t *TriCheckbox) Click() {
	t.Indeterminate = false
	t.Checked = !t.Checked
	for _, fn := range t.onChange {
		fn(t.Checked)
	}
}

// State returns the displayed aggregate state.
func (t *TriCheckbox) State() AggregateState {
	switch {
	case t.Indeterminate:
		return Indeterminate
	case t.Checked:
		return Checked
	default:
		return Unchecked
	}
}

// Button is a clickable action.
type Button struct {
	Label    string
	Disabled bool

	onClick []func()
}

// OnClick registers a click handler.
func (b *Button) OnClick(fn func()) {
	b.onClick = append(b.onClick, fn)
}

// Click runs the handlers unless the button is disabled.
func (b *Button) Click() bool {
	if b.Disabled {
		return false
	}
	for _, fn := range b.onClick {
		fn()
	}
	return true
}

// ToggleButton is a button with a pressed state and a text label.
type ToggleButton struct {
	Pressed bool
	Label   string

	onClick []func()
}

// OnClick registers a click handler.
func (t *ToggleButton) OnClick(fn func()) {
	t.onClick = append(t.onClick, fn)
}

// Click runs the handlers. The handlers decide the new pressed state.
func (t *ToggleButton) Click() {
	for _, fn := range t.onClick {
		fn()
	}
}

// Image is a placeholder that starts fetching once it gets a source.
type Image struct {
	Src    string
	Loaded bool

	onSource []func(src string)
}

// OnSource registers fn to run whenever a source is assigned.
func (img *Image) OnSource(fn func(src string)) {
	img.onSource = append(img.onSource, fn)
}

// SetSource assigns src and notifies the listeners.
func (img *Image) SetSource(src string) {
	img.Src = src
	for _, fn := range img.onSource {
		fn(src)
	}
}

// PreviewSlot is one thumbnail container of a listing row.
type PreviewSlot struct {
	Key       string
	SourceURL string
	Hidden    bool
	Image     *Image
}

// NavRequest is what a navigation form submits.
type NavRequest struct {
	Source     string
	Bucket     string
	Prefix     string
	TokenStack string
}

// NavForm carries the source, bucket and path fields of the current listing.
type NavForm struct {
	Source     *Select
	Bucket     *Select
	Prefix     *Field
	TokenStack *Field

	onSubmit func(NavRequest)
}

// OnSubmit sets the handler that performs the navigation.
func (f *NavForm) OnSubmit(fn func(NavRequest)) {
	f.onSubmit = fn
}

// Request snapshots the form. A disabled select is left out of the request,
// so an empty Bucket means "the source's default bucket".
func (f *NavForm) Request() NavRequest {
	var req NavRequest
	if f.Source != nil && !f.Source.Disabled {
		req.Source = f.Source.Value
	}
	if f.Bucket != nil && !f.Bucket.Disabled {
		req.Bucket = f.Bucket.Value
	}
	if f.Prefix != nil {
		req.Prefix = f.Prefix.Value
	}
	if f.TokenStack != nil {
		req.TokenStack = f.TokenStack.Value
	}
	return req
}

// State returns the path-scoped part of the form.
func (f *NavForm) State() NavigationState {
	req := f.Request()
	return NavigationState{Prefix: req.Prefix, TokenStack: req.TokenStack}
}

// Submit hands the current request to the submit handler.
func (f *NavForm) Submit() {
	if f.onSubmit != nil {
		f.onSubmit(f.Request())
	}
}

// Navigate sets the path fields and submits, the way folder and pagination links do.
func (f *NavForm) Navigate(prefix, tokenStack string) {
	if f.Prefix != nil {
		f.Prefix.Value = prefix
	}
	if f.TokenStack != nil {
		f.TokenStack.Value = tokenStack
	}
	f.Submit()
}

// Page is every control of one rendered listing. Any field may be nil when the
// screen variant does not show that control.
type Page struct {
	Nav           *NavForm
	Selection     *SelectionForm
	SelectAll     *TriCheckbox
	Download      *Button
	PreviewToggle *ToggleButton
	Previews      []*PreviewSlot
}
