package browser

import (
	"fmt"
	"sync"
)

// queueScheduler holds deferred work until the test runs it.
type queueScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (q *queueScheduler) Defer(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

func (q *queueScheduler) RunPending() int {
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// memPreference records every write.
type memPreference struct {
	value  bool
	writes []bool
}

func (m *memPreference) Get() bool { return m.value }

func (m *memPreference) Set(enabled bool) {
	m.value = enabled
	m.writes = append(m.writes, enabled)
}

func newSelectionForm(n int, checked ...int) *SelectionForm {
	form := &SelectionForm{}
	for i := 0; i < n; i++ {
		form.Add(&Checkbox{Name: KeysField, Value: fmt.Sprintf("photos/%03d.jpg", i)})
	}
	for _, i := range checked {
		form.Controls[i].Checked = true
	}
	return form
}

func newNavForm() *NavForm {
	return &NavForm{
		Source:     &Select{Name: "source", Value: "primary", Options: []string{"primary", "archive"}},
		Bucket:     &Select{Name: "bucket", Value: "media", Options: []string{"media", "logs"}},
		Prefix:     &Field{Name: "prefix", Value: "photos/2024/"},
		TokenStack: &Field{Name: "tokenStack", Value: "dG9rZW4x::dG9rZW4y"},
	}
}

func newPreviewSlots(n int) []*PreviewSlot {
	slots := make([]*PreviewSlot, n)
	for i := range slots {
		slots[i] = &PreviewSlot{
			Key:       fmt.Sprintf("photos/%03d.jpg", i),
			SourceURL: fmt.Sprintf("https://cdn.example/photos/%03d.jpg?sig=x", i),
			Hidden:    true,
			Image:     &Image{},
		}
	}
	return slots
}
