package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect_Choose(t *testing.T) {
	s := &Select{Value: "a", Options: []string{"a", "b"}}
	calls := 0
	s.OnChange(func() { calls++ })

	assert.False(t, s.Choose("a"), "same value is not a change")
	assert.True(t, s.Choose("b"))
	assert.Equal(t, "b", s.Value)
	assert.Equal(t, 1, calls)

	s.Disabled = true
	assert.False(t, s.Choose("a"))
	assert.Equal(t, "b", s.Value)
	assert.Equal(t, 1, calls)
}

func TestNavForm_RequestOmitsDisabledSelects(t *testing.T) {
	form := newNavForm()

	req := form.Request()
	assert.Equal(t, NavRequest{Source: "primary", Bucket: "media", Prefix: "photos/2024/", TokenStack: "dG9rZW4x::dG9rZW4y"}, req)

	form.Bucket.Disabled = true
	assert.Empty(t, form.Request().Bucket)
	assert.Equal(t, "primary", form.Request().Source)
}

func TestNavForm_PartialForm(t *testing.T) {
	form := &NavForm{}
	assert.Equal(t, NavRequest{}, form.Request())
	assert.NotPanics(t, form.Submit)
	assert.NotPanics(t, func() { form.Navigate("x/", "") })
}

func TestNavForm_Navigate(t *testing.T) {
	form := newNavForm()
	var got []NavRequest
	form.OnSubmit(func(r NavRequest) { got = append(got, r) })

	form.Navigate("photos/2025/", "")

	if assert.Len(t, got, 1) {
		assert.Equal(t, "photos/2025/", got[0].Prefix)
		assert.Empty(t, got[0].TokenStack)
		assert.Equal(t, "media", got[0].Bucket)
	}
	assert.Equal(t, NavigationState{Prefix: "photos/2025/"}, form.State())
}

func TestSelectionForm_ItemsAndCheckedKeys(t *testing.T) {
	form := newSelectionForm(3, 0, 2)
	form.Add(&Checkbox{Name: "includeFolders", Checked: true})

	assert.Len(t, form.Items(), 3)
	assert.Equal(t, []string{"photos/000.jpg", "photos/002.jpg"}, form.CheckedKeys())

	var submitted []string
	form.OnSubmit(func(keys []string) { submitted = keys })
	form.Submit()
	assert.Equal(t, []string{"photos/000.jpg", "photos/002.jpg"}, submitted)
}

func TestSelectionForm_ToggleDispatches(t *testing.T) {
	form := newSelectionForm(2)
	var events []string
	form.OnChange(func(ev ChangeEvent) { events = append(events, ev.Name()) })

	form.Toggle(form.Controls[1])
	form.Toggle(nil)

	assert.True(t, form.Controls[1].Checked)
	assert.Equal(t, []string{KeysField}, events)
	assert.Equal(t, "", ChangeEvent{}.Name())
}

func TestTriCheckbox_Click(t *testing.T) {
	var got []bool
	tri := &TriCheckbox{}
	tri.OnChange(func(checked bool) { got = append(got, checked) })

	tri.Click()
	assert.Equal(t, Checked, tri.State())

	tri.Click()
	assert.Equal(t, Unchecked, tri.State())

	tri.Indeterminate = true
	assert.Equal(t, Indeterminate, tri.State())
	tri.Click()
	assert.Equal(t, Checked, tri.State(), "indeterminate clicks over to checked")

	assert.Equal(t, []bool{true, false, true}, got)
}

func TestButton_DisabledSwallowsClick(t *testing.T) {
	calls := 0
	b := &Button{Disabled: true}
	b.OnClick(func() { calls++ })

	assert.False(t, b.Click())
	b.Disabled = false
	assert.True(t, b.Click())
	assert.Equal(t, 1, calls)
}

func TestImage_SetSource(t *testing.T) {
	img := &Image{}
	var seen []string
	img.OnSource(func(src string) { seen = append(seen, src) })

	img.SetSource("https://cdn.example/a.png")

	assert.Equal(t, "https://cdn.example/a.png", img.Src)
	assert.Equal(t, []string{"https://cdn.example/a.png"}, seen)
}
