package browser

// AggregateState is the display state of the "select all" control.
type AggregateState int

const (
	Unchecked AggregateState = iota
	Checked
	Indeterminate
)

func (s AggregateState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// SelectionCounts is the checked/total tally of the item checkboxes.
type SelectionCounts struct {
	Checked int
	Total   int
}

// Aggregate derives the "select all" state from the counts.
func (c SelectionCounts) Aggregate() AggregateState {
	switch {
	case c.Checked <= 0:
		return Unchecked
	case c.Checked >= c.Total:
		return Checked
	default:
		return Indeterminate
	}
}

// DownloadEnabled reports whether anything is selected.
func (c SelectionCounts) DownloadEnabled() bool {
	return c.Checked > 0
}

// NavigationState is the path within one source and bucket.
// Prefix and TokenStack are always cleared together.
type NavigationState struct {
	Prefix     string
	TokenStack string
}

// IsRoot reports whether the state points at the first page of the bucket root.
func (n NavigationState) IsRoot() bool {
	return n.Prefix == "" && n.TokenStack == ""
}

// Scheduler runs work on a later turn of the UI event loop.
type Scheduler interface {
	Defer(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Defer(fn func()) { f(fn) }

// Preference is a boolean setting whose reads and writes never fail.
type Preference interface {
	Get() bool
	Set(enabled bool)
}
